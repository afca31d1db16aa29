// Package checkerstest builds games from contrived positions for tests and
// demonstrations. Every constructor matches checkers.Factory and leaves Red
// to move.
package checkerstest

import (
	"github.com/kiryu-dev/checkers/internal/checkers"
)

func pos(row, col int) checkers.Position {
	return checkers.NewPosition(row, col)
}

func custom(red, white []checkers.Position) checkers.Factory {
	return func(id int, redPlayer, whitePlayer string) *checkers.Game {
		board := checkers.NewBoardWithPieces(red, white)
		return checkers.NewCustomGame(id, redPlayer, whitePlayer, checkers.Red, board)
	}
}

var (
	// KingPieces forces Red to capture onto the promotion row.
	KingPieces = custom(
		[]checkers.Position{pos(2, 1), pos(6, 1)},
		[]checkers.Position{pos(1, 2), pos(5, 0)},
	)

	// DoubleJump lets Red chain (7,0)->(5,2)->(3,0).
	DoubleJump = custom(
		[]checkers.Position{pos(7, 0), pos(1, 6), pos(3, 4)},
		[]checkers.Position{pos(0, 7), pos(6, 1), pos(4, 1)},
	)

	DoubleJumpKing = custom(
		[]checkers.Position{pos(1, 0)},
		[]checkers.Position{pos(1, 2), pos(1, 4), pos(0, 7)},
	)

	// NoMoves leaves Red one step away from being boxed in by the White back row.
	NoMoves = custom(
		[]checkers.Position{pos(2, 1)},
		[]checkers.Position{pos(0, 1), pos(0, 3), pos(0, 5), pos(0, 7)},
	)

	// KingMidTurn crowns Red in the middle of a possible chain.
	KingMidTurn = custom(
		[]checkers.Position{pos(2, 1)},
		[]checkers.Position{pos(1, 4), pos(1, 2)},
	)

	// CaptureToEnd is won by Red with a single capture.
	CaptureToEnd = custom(
		[]checkers.Position{pos(2, 1)},
		[]checkers.Position{pos(1, 2)},
	)

	InvalidMoves = custom(
		[]checkers.Position{pos(7, 2), pos(6, 1), pos(4, 1)},
		[]checkers.Position{pos(5, 4), pos(4, 3), pos(2, 3), pos(3, 6)},
	)

	SingleRedPiece = custom(
		[]checkers.Position{pos(5, 0)},
		nil,
	)

	RedJumpsWhite = custom(
		[]checkers.Position{pos(5, 0)},
		[]checkers.Position{pos(4, 1)},
	)

	// BoxedIn leaves Red to move with its only piece blocked by the board
	// edge and a White piece.
	BoxedIn = custom(
		[]checkers.Position{pos(1, 0)},
		[]checkers.Position{pos(0, 1)},
	)
)

var layouts = map[string]checkers.Factory{
	"standard":       checkers.NewGame,
	"kingPieces":     KingPieces,
	"doubleJump":     DoubleJump,
	"doubleJumpKing": DoubleJumpKing,
	"noMoves":        NoMoves,
	"kingMidTurn":    KingMidTurn,
	"captureToEnd":   CaptureToEnd,
	"invalidMoves":   InvalidMoves,
	"singleRedPiece": SingleRedPiece,
	"redJumpsWhite":  RedJumpsWhite,
	"boxedIn":        BoxedIn,
}

// Layout returns the factory registered under name. An empty name is the
// standard starting position.
func Layout(name string) (checkers.Factory, bool) {
	if name == "" {
		return checkers.NewGame, true
	}
	factory, ok := layouts[name]
	return factory, ok
}
