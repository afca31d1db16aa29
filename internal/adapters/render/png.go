package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	lightFill = "#f0d9b5"
	darkFill  = "#7a4e2d"
	redFill   = "#c0392b"
	whiteFill = "#f7f7f2"
	kingFill  = "#f1c40f"
	edgeFill  = "#222222"
)

type renderer struct {
	square int
}

// New returns a renderer drawing each square square pixels wide.
func New(square int) renderer {
	return renderer{square: square}
}

// Render draws the board as a PNG, rows top to bottom as given.
func (r renderer) Render(board checkers.BoardView) ([]byte, error) {
	size := r.square * checkers.Columns
	icon, err := oksvg.ReadIconStream(strings.NewReader(r.svg(board)))
	if err != nil {
		return nil, errors.WithMessage(err, "parse board svg")
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.WithMessage(err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r renderer) svg(board checkers.BoardView) string {
	size := r.square * checkers.Columns
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		size, size, size, size)
	for y, row := range board.Rows {
		for x, space := range row.Spaces {
			fill := lightFill
			if space.Color == checkers.SpaceBlack {
				fill = darkFill
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				x*r.square, y*r.square, r.square, r.square, fill)
			if space.Piece != nil {
				r.piece(&sb, x, y, *space.Piece)
			}
		}
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

func (r renderer) piece(sb *strings.Builder, x, y int, piece checkers.PieceView) {
	cx := x*r.square + r.square/2
	cy := y*r.square + r.square/2
	fill := whiteFill
	if piece.Color == checkers.Red.String() {
		fill = redFill
	}
	fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="%s" stroke-width="2"/>`,
		cx, cy, r.square*2/5, fill, edgeFill)
	if piece.Type == checkers.King.String() {
		fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="%d" fill="%s"/>`, cx, cy, r.square/6, kingFill)
	}
}
