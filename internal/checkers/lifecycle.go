package checkers

import (
	"time"
)

// Transitions that do not apply to the current state are ignored.

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) RequestAsync(player string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Active {
		g.state = AsyncStart
		g.asyncRequester = player
	}
}

// AcceptAsync answers the pending request. Only the requester's opponent
// may answer it.
func (g *Game) AcceptAsync(player string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == AsyncStart && g.answers(player) {
		g.state = AsyncAccepted
	}
}

func (g *Game) RejectAsync(player string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == AsyncStart && g.answers(player) {
		g.state = AsyncDenied
	}
}

func (g *Game) answers(player string) bool {
	return g.HasPlayer(player) && player != g.asyncRequester
}

// CompleteAsyncRequest is the requester acknowledging the answer.
func (g *Game) CompleteAsyncRequest() {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.state {
	case AsyncAccepted:
		g.state = AsyncActive
		g.asyncRequester = ""
	case AsyncDenied:
		g.state = Active
		g.asyncRequester = ""
	}
}

func (g *Game) IsAsyncRequester(player string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.asyncRequester != "" && g.asyncRequester == player
}

func (g *Game) AsyncRequester() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.asyncRequester
}

// MarkEnded moves the game to Ended and reports whether it did. A game
// that is already Ended stays as it is.
func (g *Game) MarkEnded(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Ended {
		return false
	}
	g.state = Ended
	g.endedAt = now
	return true
}

func (g *Game) EndedAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.endedAt
}
