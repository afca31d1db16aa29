package checkers

import (
	"fmt"
)

// The functions in this file expect the game lock to be held.

func (g *Game) validate(m Move) Result {
	switch m.Kind {
	case Simple:
		return g.validateSimple(m)
	case Jump:
		return g.validateJump(m)
	default:
		panic(fmt.Sprintf("checkers: move %v has no kind", m))
	}
}

// realStart is where the moving piece sits. Queued moves are not applied
// until commit, so during a chain it is still on the first move's start.
func (g *Game) realStart(m Move) Position {
	if first, ok := g.pending.first(); ok {
		return first.Start
	}
	return m.Start
}

func (g *Game) validateSimple(m Move) Result {
	if g.jumpAvailable() {
		return reject(ReasonJumpAvailable)
	}
	if !g.board.IsValidTarget(m.End) {
		return reject(ReasonOccupiedLanding)
	}
	piece := g.board.PieceAt(g.realStart(m))
	if piece == nil {
		return reject(ReasonNoPiece)
	}
	if abs(m.End.Col-m.Start.Col) != 1 || !allowsRowStep(piece, m.End.Row-m.Start.Row) {
		return reject(ReasonWrongDirection)
	}
	return ok()
}

func (g *Game) validateJump(m Move) Result {
	if g.pending.captured(m.Middle()) {
		return reject(ReasonAlreadyCaptured)
	}
	if abs(m.End.Row-m.Start.Row) != 2 || abs(m.End.Col-m.Start.Col) != 2 {
		return reject(ReasonBadSpacing)
	}
	if m.End.OutOfBounds() {
		return reject(ReasonOutOfBounds)
	}
	var moved *Piece
	if last, inTurn := g.pending.last(); inTurn {
		if m.Start != last.End {
			return reject(ReasonWrongPiece)
		}
		first, _ := g.pending.first()
		moved = g.board.PieceAt(first.Start)
	} else {
		moved = g.board.PieceAt(m.Start)
	}
	if moved == nil {
		return reject(ReasonNoPiece)
	}
	if !g.board.IsValidTarget(m.End) {
		return reject(ReasonBadLanding)
	}
	jumped := g.board.PieceAt(m.Middle())
	switch {
	case jumped == nil:
		return reject(ReasonEmptyMiddle)
	case jumped.Color == moved.Color:
		return reject(ReasonOwnPiece)
	}
	if !allowsRowStep(moved, (m.End.Row-m.Start.Row)/2) {
		return reject(ReasonWrongDirection)
	}
	return ok()
}

// allowsRowStep reports whether piece may travel dRow (+1 or -1) rows.
// Direction comes from the piece's color, never from whose turn it is.
func allowsRowStep(piece *Piece, dRow int) bool {
	if dRow != 1 && dRow != -1 {
		return false
	}
	return piece.IsKing() || dRow == piece.Color.forward()
}

func rowSteps(piece *Piece) []int {
	if piece.IsKing() {
		return []int{-1, 1}
	}
	return []int{piece.Color.forward()}
}

// positionHasJump probes the jumps that start at pos for the piece found at
// pieceLocation. Probes landing where a queued move already landed are skipped.
func (g *Game) positionHasJump(pos, pieceLocation Position) bool {
	piece := g.board.PieceAt(pieceLocation)
	if piece == nil {
		return false
	}
	for _, dRow := range rowSteps(piece) {
		for _, dCol := range []int{-2, 2} {
			candidate := NewJumpMove(pos, pos.offset(2*dRow, dCol))
			if !g.validateJump(candidate).Valid {
				continue
			}
			if g.pending.landingQueued(candidate.End) {
				continue
			}
			return true
		}
	}
	return false
}

func (g *Game) positionHasSimple(pos Position) bool {
	piece := g.board.PieceAt(pos)
	if piece == nil {
		return false
	}
	for _, dRow := range rowSteps(piece) {
		for _, dCol := range []int{-1, 1} {
			if g.validateSimple(NewSimpleMove(pos, pos.offset(dRow, dCol))).Valid {
				return true
			}
		}
	}
	return false
}

// jumpAvailable reports whether any piece of the side to move can capture.
func (g *Game) jumpAvailable() bool {
	for _, pos := range g.board.Locations(g.turn) {
		if g.positionHasJump(pos, pos) {
			return true
		}
	}
	return false
}

// movesLeft reports whether the queued chain must continue before commit.
func (g *Game) movesLeft() bool {
	last, ok := g.pending.last()
	if !ok || last.Kind == Simple {
		return false
	}
	first, _ := g.pending.first()
	return g.positionHasJump(last.End, first.Start)
}

// crown promotes the moving piece when the latest landing is on its
// promotion row.
func (g *Game) crown() {
	first, ok := g.pending.first()
	if !ok {
		return
	}
	last, _ := g.pending.last()
	piece := g.board.PieceAt(first.Start)
	if piece == nil || piece.IsKing() {
		return
	}
	if last.End.Row == piece.Color.promotionRow() {
		piece.promote()
		g.pending.crowned = g.pending.len() - 1
	}
}

func (g *Game) applyTurn() {
	for _, m := range g.pending.moves {
		switch m.Kind {
		case Simple:
			if g.validateSimple(m).Valid {
				g.board.Relocate(m.Start, m.End)
			}
		case Jump:
			g.board.Relocate(m.Start, m.End)
			g.board.Remove(m.Middle())
		}
	}
	g.pending.reset()
	g.turn = g.turn.Opponent()
}

func (g *Game) playerHasLost(color Color) bool {
	locations := g.board.Locations(color)
	if len(locations) == 0 {
		return true
	}
	if g.turn != color {
		return false
	}
	// Loss is judged on the committed position only.
	saved := g.pending
	g.pending = newTurnQueue()
	defer func() {
		g.pending = saved
	}()
	for _, pos := range locations {
		if g.positionHasJump(pos, pos) || g.positionHasSimple(pos) {
			return false
		}
	}
	return true
}
