package checkers

// turnQueue holds the moves queued during the current turn. Nothing here is
// applied to the board until the turn is committed.
type turnQueue struct {
	moves []Move
	// crowned is the index of the move that promoted the piece, or -1.
	crowned int
}

func newTurnQueue() turnQueue {
	return turnQueue{crowned: -1}
}

func (t *turnQueue) add(m Move) {
	t.moves = append(t.moves, m)
}

func (t *turnQueue) hasMoves() bool {
	return len(t.moves) > 0
}

func (t *turnQueue) len() int {
	return len(t.moves)
}

func (t *turnQueue) first() (Move, bool) {
	if len(t.moves) == 0 {
		return Move{}, false
	}
	return t.moves[0], true
}

func (t *turnQueue) last() (Move, bool) {
	if len(t.moves) == 0 {
		return Move{}, false
	}
	return t.moves[len(t.moves)-1], true
}

func (t *turnQueue) removeLast() (Move, bool) {
	m, ok := t.last()
	if !ok {
		return Move{}, false
	}
	t.moves = t.moves[:len(t.moves)-1]
	return m, true
}

func (t *turnQueue) promoted() bool {
	return t.crowned >= 0
}

func (t *turnQueue) landingQueued(end Position) bool {
	for _, m := range t.moves {
		if m.End == end {
			return true
		}
	}
	return false
}

func (t *turnQueue) captured(middle Position) bool {
	for _, m := range t.moves {
		if m.Kind == Jump && m.Middle() == middle {
			return true
		}
	}
	return false
}

func (t *turnQueue) snapshot() []Move {
	moves := make([]Move, len(t.moves))
	copy(moves, t.moves)
	return moves
}

func (t *turnQueue) reset() {
	t.moves = nil
	t.crowned = -1
}
