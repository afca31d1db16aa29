package checkers

const (
	SpaceBlack = "BLACK"
	SpaceWhite = "WHITE"
)

type PieceView struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type SpaceView struct {
	CellIdx int        `json:"cellIdx"`
	Color   string     `json:"color"`
	Piece   *PieceView `json:"piece,omitempty"`
}

// IsValid reports whether a piece could land on the space.
func (s SpaceView) IsValid() bool {
	return s.Color == SpaceBlack && s.Piece == nil
}

type RowView struct {
	Index  int         `json:"index"`
	Spaces []SpaceView `json:"spaces"`
}

// BoardView is a read-only snapshot of the board as one player sees it.
type BoardView struct {
	Rows []RowView `json:"rows"`
}

// newBoardView lists rows 0..7. For the white side both the rows and the
// cells inside them are reversed so that each player's pieces sit nearest
// to them.
func newBoardView(b *Board, flipped bool) BoardView {
	rows := make([]RowView, 0, Rows)
	for row := 0; row < Rows; row++ {
		spaces := make([]SpaceView, 0, Columns)
		for col := 0; col < Columns; col++ {
			sq := &b.squares[row][col]
			space := SpaceView{CellIdx: col, Color: SpaceWhite}
			if sq.shade == Dark {
				space.Color = SpaceBlack
				if sq.piece != nil {
					space.Piece = &PieceView{
						Type:  sq.piece.Rank.String(),
						Color: sq.piece.Color.String(),
					}
				}
			}
			spaces = append(spaces, space)
		}
		if flipped {
			reverse(spaces)
		}
		rows = append(rows, RowView{Index: row, Spaces: spaces})
	}
	if flipped {
		reverse(rows)
	}
	return BoardView{Rows: rows}
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
