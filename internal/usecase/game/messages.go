package game

const (
	validMoveMessage     = "Valid move!"
	turnSubmittedMessage = "Turn submitted"
	backedUpSimpleMove   = "Backed up simple move."
	backedUpJumpMove     = "Backed up jump move."
	resignedMessage      = "You have resigned."
	opponentLeftMessage  = "The other player has left, you win! Please go back to home page."
	asyncRequestMessage  = "Your opponent has requested to switch to asynchronous mode. " +
		"Would you like to switch to asynchronous mode?"
)
