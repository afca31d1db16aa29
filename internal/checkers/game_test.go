package checkers_test

import (
	"testing"
	"time"

	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/kiryu-dev/checkers/internal/checkers/checkerstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleJumpTurn(t *testing.T) {
	game := checkerstest.DoubleJump(1, redPlayer, whitePlayer)
	first := checkers.NewJumpMove(pos(7, 0), pos(5, 2))
	second := checkers.NewJumpMove(pos(5, 2), pos(3, 0))

	require.True(t, game.SubmitMove(redPlayer, first).Valid)
	assert.True(t, game.MovesLeft())

	result := game.CommitTurn()
	assert.False(t, result.Valid)
	assert.Equal(t, checkers.ReasonTurnIncomplete, result.Reason)
	assert.Equal(t, "Submitted turn is incomplete", result.Message())

	// only the piece that started the chain may keep jumping
	assert.Equal(t, checkers.ReasonWrongPiece,
		game.Validate(checkers.NewJumpMove(pos(3, 4), pos(1, 2))).Reason)

	require.True(t, game.SubmitMove(redPlayer, second).Valid)
	assert.False(t, game.MovesLeft())
	require.True(t, game.CommitTurn().Valid)

	board := game.Board()
	for _, p := range []checkers.Position{pos(7, 0), pos(6, 1), pos(5, 2), pos(4, 1)} {
		assert.Nil(t, board.PieceAt(p), "%v", p)
	}
	require.NotNil(t, board.PieceAt(pos(3, 0)))
	assert.Equal(t, checkers.Red, board.PieceAt(pos(3, 0)).Color)
	assert.Equal(t, 1, board.Count(checkers.White))
	assert.Equal(t, checkers.White, game.Turn())
}

func TestSamePieceCannotBeCapturedTwice(t *testing.T) {
	game := customGame(checkers.Red, func(b *checkers.Board) {
		b.Place(pos(5, 0), checkers.NewKing(checkers.Red))
		b.Place(pos(4, 1), checkers.NewPiece(checkers.White))
		b.Place(pos(0, 7), checkers.NewPiece(checkers.White))
	})
	require.True(t, game.SubmitMove(redPlayer, checkers.NewJumpMove(pos(5, 0), pos(3, 2))).Valid)

	result := game.SubmitMove(redPlayer, checkers.NewJumpMove(pos(3, 2), pos(5, 0)))
	assert.False(t, result.Valid)
	assert.Equal(t, checkers.ReasonAlreadyCaptured, result.Reason)
	assert.False(t, game.MovesLeft())
	assert.Len(t, game.QueuedMoves(), 1)
}

func TestKingChainsInAnyDirection(t *testing.T) {
	game := checkerstest.DoubleJumpKing(1, redPlayer, whitePlayer)

	require.True(t, game.SubmitMove(redPlayer, checkers.NewSimpleMove(pos(1, 0), pos(0, 1))).Valid)
	require.True(t, game.Promoted())
	require.True(t, game.CommitTurn().Valid)
	require.True(t, game.SubmitMove(whitePlayer, checkers.NewSimpleMove(pos(0, 7), pos(1, 6))).Valid)
	require.True(t, game.CommitTurn().Valid)

	chain := []checkers.Move{
		checkers.NewJumpMove(pos(0, 1), pos(2, 3)),
		checkers.NewJumpMove(pos(2, 3), pos(0, 5)),
		checkers.NewJumpMove(pos(0, 5), pos(2, 7)),
	}
	for i, move := range chain {
		result := game.SubmitMove(redPlayer, move)
		require.True(t, result.Valid, "%v: %s", move, result.Message())
		assert.Equal(t, i < len(chain)-1, game.MovesLeft(), "%v", move)
	}
	require.True(t, game.CommitTurn().Valid)

	winner, ok := game.ComputeWinner()
	assert.True(t, ok)
	assert.Equal(t, redPlayer, winner)
}

func TestPromotionEndsTheTurn(t *testing.T) {
	game := checkerstest.KingMidTurn(1, redPlayer, whitePlayer)

	require.True(t, game.SubmitMove(redPlayer, checkers.NewJumpMove(pos(2, 1), pos(0, 3))).Valid)
	assert.True(t, game.Promoted())
	assert.True(t, game.Board().PieceAt(pos(2, 1)).IsKing())

	result := game.SubmitMove(redPlayer, checkers.NewJumpMove(pos(0, 3), pos(2, 5)))
	assert.False(t, result.Valid)
	assert.Equal(t, checkers.ReasonTurnOver, result.Reason)

	require.True(t, game.CommitTurn().Valid)
	assert.False(t, game.Promoted())
	board := game.Board()
	require.NotNil(t, board.PieceAt(pos(0, 3)))
	assert.True(t, board.PieceAt(pos(0, 3)).IsKing())
	assert.Nil(t, board.PieceAt(pos(1, 2)))
	assert.NotNil(t, board.PieceAt(pos(1, 4)))
	assert.Equal(t, checkers.White, game.Turn())
}

func TestWhitePromotesOnLastRow(t *testing.T) {
	game := customGame(checkers.White, func(b *checkers.Board) {
		b.Place(pos(6, 1), checkers.NewPiece(checkers.White))
		b.Place(pos(0, 1), checkers.NewPiece(checkers.Red))
	})
	require.True(t, game.SubmitMove(whitePlayer, checkers.NewSimpleMove(pos(6, 1), pos(7, 2))).Valid)
	assert.True(t, game.Promoted())
	require.True(t, game.CommitTurn().Valid)
	assert.True(t, game.Board().PieceAt(pos(7, 2)).IsKing())
}

func TestUndoRevertsPromotion(t *testing.T) {
	game := checkerstest.KingMidTurn(1, redPlayer, whitePlayer)
	jump := checkers.NewJumpMove(pos(2, 1), pos(0, 3))
	require.True(t, game.SubmitMove(redPlayer, jump).Valid)

	undone, result := game.UndoLastMove(redPlayer)
	require.True(t, result.Valid)
	assert.Equal(t, jump, undone)
	assert.False(t, game.Promoted())
	assert.False(t, game.Board().PieceAt(pos(2, 1)).IsKing())
	assert.Empty(t, game.QueuedMoves())

	_, result = game.UndoLastMove(redPlayer)
	assert.Equal(t, checkers.ReasonNothingToUndo, result.Reason)

	// the turn is open again
	require.True(t, game.SubmitMove(redPlayer, jump).Valid)
	assert.True(t, game.Promoted())
}

func TestUndoMidChain(t *testing.T) {
	game := checkerstest.DoubleJump(1, redPlayer, whitePlayer)
	require.True(t, game.SubmitMove(redPlayer, checkers.NewJumpMove(pos(7, 0), pos(5, 2))).Valid)
	require.True(t, game.SubmitMove(redPlayer, checkers.NewJumpMove(pos(5, 2), pos(3, 0))).Valid)

	undone, result := game.UndoLastMove(redPlayer)
	require.True(t, result.Valid)
	assert.Equal(t, pos(3, 0), undone.End)
	assert.Len(t, game.QueuedMoves(), 1)
	assert.True(t, game.MovesLeft())
}

func TestUndoChecksTurnAndState(t *testing.T) {
	game := checkers.NewGame(1, redPlayer, whitePlayer)
	require.True(t, game.SubmitMove(redPlayer, checkers.NewSimpleMove(pos(5, 0), pos(4, 1))).Valid)

	_, result := game.UndoLastMove(whitePlayer)
	assert.Equal(t, checkers.ReasonNotYourTurn, result.Reason)
	_, result = game.UndoLastMove("carol")
	assert.Equal(t, checkers.ReasonNotYourTurn, result.Reason)
	assert.Len(t, game.QueuedMoves(), 1)

	game.RequestAsync(whitePlayer)
	_, result = game.UndoLastMove(redPlayer)
	assert.Equal(t, checkers.ReasonNotPlayable, result.Reason)
	assert.Len(t, game.QueuedMoves(), 1)
}

func TestOneSimpleMovePerTurn(t *testing.T) {
	game := checkers.NewGame(1, redPlayer, whitePlayer)
	require.True(t, game.SubmitMove(redPlayer, checkers.NewSimpleMove(pos(5, 0), pos(4, 1))).Valid)

	result := game.SubmitMove(redPlayer, checkers.NewSimpleMove(pos(5, 2), pos(4, 3)))
	assert.False(t, result.Valid)
	assert.Equal(t, checkers.ReasonTooManySimple, result.Reason)
}

func TestSubmitChecksTurnAndOwnership(t *testing.T) {
	game := checkers.NewGame(1, redPlayer, whitePlayer)

	assert.Equal(t, checkers.ReasonNotYourTurn,
		game.SubmitMove(whitePlayer, checkers.NewSimpleMove(pos(2, 1), pos(3, 0))).Reason)
	assert.Equal(t, checkers.ReasonNotYourTurn,
		game.SubmitMove("carol", checkers.NewSimpleMove(pos(5, 0), pos(4, 1))).Reason)
	assert.Equal(t, checkers.ReasonNotYourPiece,
		game.SubmitMove(redPlayer, checkers.NewSimpleMove(pos(2, 1), pos(3, 2))).Reason)
	assert.Empty(t, game.QueuedMoves())
}

func TestCommitWithoutMoves(t *testing.T) {
	game := checkers.NewGame(1, redPlayer, whitePlayer)
	result := game.CommitTurn()
	assert.False(t, result.Valid)
	assert.Equal(t, checkers.ReasonNothingToSubmit, result.Reason)
	assert.Equal(t, checkers.Red, game.Turn())
}

func TestMovesRejectedWhileNegotiating(t *testing.T) {
	game := checkers.NewGame(1, redPlayer, whitePlayer)
	game.RequestAsync(whitePlayer)

	result := game.SubmitMove(redPlayer, checkers.NewSimpleMove(pos(5, 0), pos(4, 1)))
	assert.Equal(t, checkers.ReasonNotPlayable, result.Reason)

	game.AcceptAsync(redPlayer)
	game.CompleteAsyncRequest()
	require.Equal(t, checkers.AsyncActive, game.State())
	assert.True(t, game.SubmitMove(redPlayer, checkers.NewSimpleMove(pos(5, 0), pos(4, 1))).Valid)
}

func TestComputeWinner(t *testing.T) {
	tests := []struct {
		name    string
		factory checkers.Factory
		winner  string
	}{
		{"white has no pieces", checkerstest.SingleRedPiece, redPlayer},
		{"red is boxed in on its turn", checkerstest.BoxedIn, whitePlayer},
		{"opening position", checkers.NewGame, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := tt.factory(1, redPlayer, whitePlayer)
			winner, ok := game.ComputeWinner()
			assert.Equal(t, tt.winner != "", ok)
			assert.Equal(t, tt.winner, winner)
		})
	}
}

func TestBoxedInOnlyLosesOnOwnTurn(t *testing.T) {
	game := customGame(checkers.White, func(b *checkers.Board) {
		b.Place(pos(1, 0), checkers.NewPiece(checkers.Red))
		b.Place(pos(0, 1), checkers.NewPiece(checkers.White))
		b.Place(pos(0, 7), checkers.NewPiece(checkers.White))
	})
	assert.False(t, game.PlayerHasLost(checkers.Red))
	_, ok := game.ComputeWinner()
	assert.False(t, ok)
}

func TestCaptureToEnd(t *testing.T) {
	game := checkerstest.CaptureToEnd(1, redPlayer, whitePlayer)
	require.True(t, game.SubmitMove(redPlayer, checkers.ParseMove(pos(2, 1), pos(0, 3))).Valid)
	require.True(t, game.CommitTurn().Valid)

	assert.True(t, game.PlayerHasLost(checkers.White))
	winner, ok := game.ComputeWinner()
	require.True(t, ok)
	assert.Equal(t, redPlayer, winner)
}

func TestWinnerIsOnlyComputedWhileActive(t *testing.T) {
	game := checkerstest.SingleRedPiece(1, redPlayer, whitePlayer)
	game.RequestAsync(redPlayer)
	_, ok := game.ComputeWinner()
	assert.False(t, ok)
}

func TestLeave(t *testing.T) {
	game := checkers.NewGame(1, redPlayer, whitePlayer)
	game.Leave(redPlayer)

	assert.Equal(t, redPlayer, game.ResignedPlayer())
	assert.Equal(t, whitePlayer, game.Winner())
	assert.Equal(t, checkers.Active, game.State())
	winner, ok := game.ComputeWinner()
	assert.True(t, ok)
	assert.Equal(t, whitePlayer, winner)
}

func TestLeaveKeepsADecidedResult(t *testing.T) {
	game := checkerstest.CaptureToEnd(1, redPlayer, whitePlayer)
	require.True(t, game.SubmitMove(redPlayer, checkers.NewJumpMove(pos(2, 1), pos(0, 3))).Valid)
	require.True(t, game.CommitTurn().Valid)
	winner, ok := game.ComputeWinner()
	require.True(t, ok)
	require.Equal(t, redPlayer, winner)
	require.True(t, game.MarkEnded(time.Now()))

	game.Leave(redPlayer)
	assert.Equal(t, redPlayer, game.Winner())
	assert.Empty(t, game.ResignedPlayer())
}

func TestPlayers(t *testing.T) {
	game := checkers.NewGame(7, redPlayer, whitePlayer)
	assert.Equal(t, 7, game.ID())
	assert.Equal(t, checkers.Red, game.ColorOf(redPlayer))
	assert.Equal(t, checkers.White, game.ColorOf(whitePlayer))
	assert.Equal(t, checkers.NoColor, game.ColorOf("carol"))
	assert.Equal(t, whitePlayer, game.OpponentOf(redPlayer))
	assert.Equal(t, redPlayer, game.OpponentOf(whitePlayer))
	assert.True(t, game.IsPlayersTurn(redPlayer))
	assert.False(t, game.IsPlayersTurn(whitePlayer))
	assert.Equal(t, checkers.White, game.OpponentTurnColor(redPlayer))
}
