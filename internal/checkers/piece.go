package checkers

type Color byte

const (
	NoColor = Color(iota)
	Red
	White
)

func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case White:
		return "WHITE"
	default:
		return "NONE"
	}
}

func (c Color) Opponent() Color {
	switch c {
	case Red:
		return White
	case White:
		return Red
	default:
		return NoColor
	}
}

// promotionRow is the row on which a single piece of this color is crowned.
func (c Color) promotionRow() int {
	if c == Red {
		return 0
	}
	return Rows - 1
}

// forward is the row delta of a non-king step.
func (c Color) forward() int {
	if c == Red {
		return -1
	}
	return 1
}

type Rank byte

const (
	Single = Rank(iota)
	King
)

func (r Rank) String() string {
	if r == King {
		return "KING"
	}
	return "SINGLE"
}

type Piece struct {
	Color Color
	Rank  Rank
}

func NewPiece(color Color) *Piece {
	return &Piece{Color: color, Rank: Single}
}

func NewKing(color Color) *Piece {
	return &Piece{Color: color, Rank: King}
}

func (p *Piece) IsKing() bool {
	return p.Rank == King
}

func (p *Piece) promote() {
	p.Rank = King
}

// demote is only used to revert a promotion when the crowning move is undone.
func (p *Piece) demote() {
	p.Rank = Single
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "RED":
		*c = Red
	case "WHITE":
		*c = White
	default:
		*c = NoColor
	}
	return nil
}
