package checkers

import (
	"strings"
)

type Shade byte

const (
	Light = Shade(iota)
	Dark
)

type Square struct {
	shade Shade
	piece *Piece
}

func (s *Square) Shade() Shade {
	return s.shade
}

func (s *Square) Piece() *Piece {
	return s.piece
}

func (s *Square) HasPiece() bool {
	return s.piece != nil
}

// IsValid reports whether a piece may land here.
func (s *Square) IsValid() bool {
	return s.shade == Dark && s.piece == nil
}

func (s *Square) put(p *Piece) bool {
	if !s.IsValid() || p == nil {
		return false
	}
	s.piece = p
	return true
}

func (s *Square) clear() *Piece {
	p := s.piece
	s.piece = nil
	return p
}

type Board struct {
	squares [Rows][Columns]Square
}

const startingRows = 3

// NewBoard returns the standard layout: White on the dark squares of rows 0-2,
// Red on rows 5-7.
func NewBoard() *Board {
	b := emptyBoard()
	for row := 0; row < Rows; row++ {
		var color Color
		switch {
		case row < startingRows:
			color = White
		case row >= Rows-startingRows:
			color = Red
		default:
			continue
		}
		for col := 0; col < Columns; col++ {
			b.squares[row][col].put(NewPiece(color))
		}
	}
	return b
}

// NewBoardWithPieces returns a board holding single pieces on the given squares
// only. Light or out-of-range positions are ignored.
func NewBoardWithPieces(red, white []Position) *Board {
	b := emptyBoard()
	for _, pos := range red {
		b.Place(pos, NewPiece(Red))
	}
	for _, pos := range white {
		b.Place(pos, NewPiece(White))
	}
	return b
}

func emptyBoard() *Board {
	b := &Board{}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			shade := Light
			if NewPosition(row, col).IsDark() {
				shade = Dark
			}
			b.squares[row][col] = Square{shade: shade}
		}
	}
	return b
}

// Place puts p on an empty dark square and reports whether it did.
func (b *Board) Place(pos Position, p *Piece) bool {
	sq := b.square(pos)
	if sq == nil {
		return false
	}
	return sq.put(p)
}

// Relocate moves whatever occupies from onto to. Callers validate first; a
// relocation onto a square that cannot take a piece does nothing.
func (b *Board) Relocate(from, to Position) {
	src, dst := b.square(from), b.square(to)
	if src == nil || dst == nil || !dst.IsValid() {
		return
	}
	dst.put(src.clear())
}

func (b *Board) Remove(pos Position) *Piece {
	sq := b.square(pos)
	if sq == nil {
		return nil
	}
	return sq.clear()
}

// IsValidTarget reports whether pos is on the board, dark and empty.
func (b *Board) IsValidTarget(pos Position) bool {
	sq := b.square(pos)
	return sq != nil && sq.IsValid()
}

func (b *Board) PieceAt(pos Position) *Piece {
	sq := b.square(pos)
	if sq == nil {
		return nil
	}
	return sq.piece
}

func (b *Board) Square(pos Position) (Square, bool) {
	sq := b.square(pos)
	if sq == nil {
		return Square{}, false
	}
	return *sq, true
}

// Locations lists the squares holding a piece of color, row by row.
func (b *Board) Locations(color Color) []Position {
	var locations []Position
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if p := b.squares[row][col].piece; p != nil && p.Color == color {
				locations = append(locations, NewPosition(row, col))
			}
		}
	}
	return locations
}

func (b *Board) Count(color Color) int {
	return len(b.Locations(color))
}

func (b *Board) square(pos Position) *Square {
	if pos.OutOfBounds() {
		return nil
	}
	return &b.squares[pos.Row][pos.Col]
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			p := b.squares[row][col].piece
			switch {
			case p == nil:
				sb.WriteByte('_')
			case p.Color == Red && p.IsKing():
				sb.WriteByte('R')
			case p.Color == Red:
				sb.WriteByte('r')
			case p.IsKing():
				sb.WriteByte('W')
			default:
				sb.WriteByte('w')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
