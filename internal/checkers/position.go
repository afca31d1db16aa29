package checkers

import (
	"fmt"
)

const (
	Rows    = 8
	Columns = 8
)

// Position is a (row, column) coordinate. Values outside the board are
// allowed so that probe targets can be built and then rejected.
type Position struct {
	Row int `json:"row"`
	Col int `json:"cell"`
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Columns
}

func (p Position) OutOfBounds() bool {
	return !p.InBounds()
}

// IsDark reports the fixed shade of the square at p.
func (p Position) IsDark() bool {
	return (p.Row+p.Col)%2 == 1
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}
