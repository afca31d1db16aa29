package checkers_test

import (
	"testing"

	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(row, col int) checkers.Position {
	return checkers.NewPosition(row, col)
}

func TestNewBoardLayout(t *testing.T) {
	board := checkers.NewBoard()
	for row := 0; row < checkers.Rows; row++ {
		for col := 0; col < checkers.Columns; col++ {
			p := pos(row, col)
			sq, ok := board.Square(p)
			require.True(t, ok)
			dark := (row+col)%2 == 1
			assert.Equal(t, dark, sq.Shade() == checkers.Dark, "shade of %v", p)
			if !dark {
				assert.False(t, sq.HasPiece(), "light square %v holds a piece", p)
				continue
			}
			switch {
			case row <= 2:
				require.NotNil(t, sq.Piece(), "%v", p)
				assert.Equal(t, checkers.White, sq.Piece().Color)
			case row >= 5:
				require.NotNil(t, sq.Piece(), "%v", p)
				assert.Equal(t, checkers.Red, sq.Piece().Color)
			default:
				assert.Nil(t, sq.Piece(), "%v", p)
			}
		}
	}
	assert.Equal(t, 12, board.Count(checkers.Red))
	assert.Equal(t, 12, board.Count(checkers.White))
}

func TestIsValidTarget(t *testing.T) {
	board := checkers.NewBoardWithPieces([]checkers.Position{pos(5, 0)}, nil)
	tests := []struct {
		name string
		pos  checkers.Position
		want bool
	}{
		{"empty dark square", pos(4, 1), true},
		{"occupied square", pos(5, 0), false},
		{"light square", pos(4, 0), false},
		{"negative row", pos(-1, 0), false},
		{"column past the edge", pos(0, 9), false},
		{"both past the edge", pos(8, 8), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, board.IsValidTarget(tt.pos))
		})
	}
}

func TestRelocateKeepsSingleOccupancy(t *testing.T) {
	board := checkers.NewBoard()
	board.Relocate(pos(5, 0), pos(4, 1))
	board.Relocate(pos(4, 1), pos(3, 2))
	board.Relocate(pos(2, 1), pos(3, 2))

	assert.Nil(t, board.PieceAt(pos(5, 0)))
	assert.Nil(t, board.PieceAt(pos(4, 1)))
	require.NotNil(t, board.PieceAt(pos(3, 2)))
	assert.Equal(t, checkers.Red, board.PieceAt(pos(3, 2)).Color)
	// relocating onto an occupied square is a no-op
	require.NotNil(t, board.PieceAt(pos(2, 1)))
	assert.Equal(t, checkers.White, board.PieceAt(pos(2, 1)).Color)
	assert.Equal(t, 12, board.Count(checkers.Red))
	assert.Equal(t, 12, board.Count(checkers.White))
}

func TestBoardWithPiecesIgnoresLightSquares(t *testing.T) {
	board := checkers.NewBoardWithPieces(
		[]checkers.Position{pos(5, 0), pos(5, 1)},
		[]checkers.Position{pos(9, 9)},
	)
	assert.Equal(t, []checkers.Position{pos(5, 0)}, board.Locations(checkers.Red))
	assert.Empty(t, board.Locations(checkers.White))
}
