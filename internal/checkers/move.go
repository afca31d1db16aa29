package checkers

import (
	"fmt"
)

type MoveKind byte

const (
	Simple = MoveKind(iota + 1)
	Jump
)

func (k MoveKind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Jump:
		return "jump"
	default:
		return "unknown"
	}
}

// Move is a Simple or Jump action between two positions.
type Move struct {
	Kind  MoveKind
	Start Position
	End   Position
}

func NewSimpleMove(start, end Position) Move {
	return Move{Kind: Simple, Start: start, End: end}
}

func NewJumpMove(start, end Position) Move {
	return Move{Kind: Jump, Start: start, End: end}
}

// ParseMove picks the kind from the geometry: a one-square diagonal is a
// Simple move, anything else is treated as a Jump.
func ParseMove(start, end Position) Move {
	if isAdjacentDiagonal(start, end) {
		return NewSimpleMove(start, end)
	}
	return NewJumpMove(start, end)
}

// Middle is the square a jump passes over.
func (m Move) Middle() Position {
	return NewPosition((m.Start.Row+m.End.Row)/2, (m.Start.Col+m.End.Col)/2)
}

func (m Move) Equal(other Move) bool {
	return m.Start == other.Start && m.End == other.End
}

func (m Move) String() string {
	return fmt.Sprintf("%s%v->%v", m.Kind, m.Start, m.End)
}

func isAdjacentDiagonal(start, end Position) bool {
	return abs(start.Row-end.Row) == 1 && abs(start.Col-end.Col) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type Reason string

const (
	ReasonValid           = Reason("VALID")
	ReasonJumpAvailable   = Reason("JUMP_AVAILABLE")
	ReasonOccupiedLanding = Reason("OCCUPIED_LANDING")
	ReasonWrongDirection  = Reason("WRONG_DIRECTION")
	ReasonNoPiece         = Reason("NO_PIECE")
	ReasonWrongPiece      = Reason("WRONG_PIECE")
	ReasonBadSpacing      = Reason("BAD_SPACING")
	ReasonBadLanding      = Reason("BAD_LANDING")
	ReasonOutOfBounds     = Reason("OUT_OF_BOUNDS")
	ReasonEmptyMiddle     = Reason("EMPTY_MIDDLE")
	ReasonOwnPiece        = Reason("OWN_PIECE")
	ReasonAlreadyCaptured = Reason("ALREADY_CAPTURED")
	ReasonTurnOver        = Reason("TURN_OVER")
	ReasonTooManySimple   = Reason("TOO_MANY_SIMPLE")
	ReasonNotYourTurn     = Reason("NOT_YOUR_TURN")
	ReasonNotYourPiece    = Reason("NOT_YOUR_PIECE")
	ReasonNotPlayable     = Reason("GAME_NOT_PLAYABLE")
	ReasonNothingToSubmit = Reason("NOTHING_TO_SUBMIT")
	ReasonTurnIncomplete  = Reason("TURN_INCOMPLETE")
	ReasonNothingToUndo   = Reason("NOTHING_TO_UNDO")
)

var reasonMessages = map[Reason]string{
	ReasonValid:           "Valid Move!",
	ReasonJumpAvailable:   "You must jump a piece",
	ReasonOccupiedLanding: "You cannot end a simple move on a space with a piece on it.",
	ReasonWrongDirection:  "You must move non-kinged pieces forward",
	ReasonNoPiece:         "This space does not contain a piece.",
	ReasonWrongPiece:      "Please continue jumping with your current piece.",
	ReasonBadSpacing:      "Jump does not jump the correct distance.",
	ReasonBadLanding:      "You cannot end a jump move on a space with a piece.",
	ReasonOutOfBounds:     "Please place the piece inside the board.",
	ReasonEmptyMiddle:     "You cannot jump an empty space.",
	ReasonOwnPiece:        "You cannot jump your own piece.",
	ReasonAlreadyCaptured: "That piece has already been jumped!",
	ReasonTurnOver:        "You have created a king piece, so your turn is over. Please submit!",
	ReasonTooManySimple:   "You may only make one simple move per turn.",
	ReasonNotYourTurn:     "It is not your turn.",
	ReasonNotYourPiece:    "You can only move your own pieces.",
	ReasonNotPlayable:     "This game is not accepting moves right now.",
	ReasonNothingToSubmit: "There are no moves to submit.",
	ReasonTurnIncomplete:  "Submitted turn is incomplete",
	ReasonNothingToUndo:   "There are no moves to back up.",
}

func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// Result is the outcome of checking a move or a turn operation.
type Result struct {
	Valid  bool
	Reason Reason
}

func ok() Result {
	return Result{Valid: true, Reason: ReasonValid}
}

func reject(reason Reason) Result {
	return Result{Reason: reason}
}

func (r Result) Message() string {
	return r.Reason.Message()
}
