package checkers

import (
	"sync"
	"time"
)

// Game is the unit of rule enforcement. Every exported method takes the game
// lock, so a validate-then-queue, a commit, an undo and a lifecycle
// transition never interleave.
type Game struct {
	mu             sync.Mutex
	id             int
	red            string
	white          string
	board          *Board
	turn           Color
	pending        turnQueue
	state          State
	asyncRequester string
	resigned       string
	signedOut      string
	winner         string
	endedAt        time.Time
}

// Factory builds the game a registry hands out for a new pairing.
type Factory func(id int, red, white string) *Game

var _ Factory = NewGame

func NewGame(id int, red, white string) *Game {
	return NewCustomGame(id, red, white, Red, NewBoard())
}

// NewCustomGame starts a game from an arbitrary position.
func NewCustomGame(id int, red, white string, turn Color, board *Board) *Game {
	return &Game{
		id:      id,
		red:     red,
		white:   white,
		board:   board,
		turn:    turn,
		pending: newTurnQueue(),
		state:   Active,
	}
}

func (g *Game) ID() int {
	return g.id
}

func (g *Game) RedPlayer() string {
	return g.red
}

func (g *Game) WhitePlayer() string {
	return g.white
}

func (g *Game) HasPlayer(player string) bool {
	return player == g.red || player == g.white
}

// ColorOf returns NoColor for a player outside the game.
func (g *Game) ColorOf(player string) Color {
	switch player {
	case g.red:
		return Red
	case g.white:
		return White
	default:
		return NoColor
	}
}

func (g *Game) OpponentOf(player string) string {
	if player == g.white {
		return g.red
	}
	return g.white
}

func (g *Game) Turn() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

func (g *Game) IsPlayersTurn(player string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ColorOf(player) == g.turn
}

func (g *Game) OpponentTurnColor(player string) Color {
	if player == g.red {
		return White
	}
	return Red
}

// Board returns a copy of the current position.
func (g *Game) Board() *Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.clone()
}

func (g *Game) Validate(m Move) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.validate(m)
}

// SubmitMove checks m for player and, when legal, queues it for the current
// turn. Rule violations come back as a rejected Result.
func (g *Game) SubmitMove(player string, m Move) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.Playable() {
		return reject(ReasonNotPlayable)
	}
	color := g.ColorOf(player)
	if color != g.turn {
		return reject(ReasonNotYourTurn)
	}
	if g.pending.promoted() {
		return reject(ReasonTurnOver)
	}
	if piece := g.board.PieceAt(g.realStart(m)); piece != nil && piece.Color != color {
		return reject(ReasonNotYourPiece)
	}
	result := g.validate(m)
	if !result.Valid {
		return result
	}
	if last, ok := g.pending.last(); ok && (m.Kind == Simple || last.Kind == Simple) {
		return reject(ReasonTooManySimple)
	}
	g.pending.add(m)
	g.crown()
	return result
}

// UndoLastMove drops the most recent move player queued. Removing the move
// that crowned the piece also takes the crown back.
func (g *Game) UndoLastMove(player string) (Move, Result) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.Playable() {
		return Move{}, reject(ReasonNotPlayable)
	}
	if g.ColorOf(player) != g.turn {
		return Move{}, reject(ReasonNotYourTurn)
	}
	first, queued := g.pending.first()
	if !queued {
		return Move{}, reject(ReasonNothingToUndo)
	}
	if g.pending.crowned == g.pending.len()-1 {
		if piece := g.board.PieceAt(first.Start); piece != nil {
			piece.demote()
		}
		g.pending.crowned = -1
	}
	m, _ := g.pending.removeLast()
	return m, ok()
}

// CommitTurn applies the queued moves and passes the turn. A turn that
// crowned a piece is always closeable; otherwise an unfinished jump chain
// keeps the turn open.
func (g *Game) CommitTurn() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.Playable() {
		return reject(ReasonNotPlayable)
	}
	if !g.pending.hasMoves() {
		return reject(ReasonNothingToSubmit)
	}
	if !g.pending.promoted() && g.movesLeft() {
		return reject(ReasonTurnIncomplete)
	}
	g.applyTurn()
	return ok()
}

func (g *Game) MovesLeft() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.movesLeft()
}

func (g *Game) JumpAvailable() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.jumpAvailable()
}

func (g *Game) QueuedMoves() []Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending.snapshot()
}

// Promoted reports whether a piece was crowned during the current turn.
func (g *Game) Promoted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending.promoted()
}

// Leave records player as resigning and the opponent as winner. The
// lifecycle state is left alone, and a decided game keeps its result.
func (g *Game) Leave(player string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Ended && g.winner != "" {
		return
	}
	g.resigned = player
	g.winner = g.OpponentOf(player)
}

func (g *Game) PlayerHasLost(color Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerHasLost(color)
}

// ComputeWinner evaluates the board while the game is Active and returns
// the winner known so far.
func (g *Game) ComputeWinner() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Active {
		switch {
		case g.playerHasLost(White):
			g.winner = g.red
		case g.playerHasLost(Red):
			g.winner = g.white
		}
	}
	return g.winner, g.winner != ""
}

func (g *Game) Winner() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

func (g *Game) ResignedPlayer() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resigned
}

func (g *Game) SignedOutPlayer() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.signedOut
}

func (g *Game) SetSignedOutPlayer(player string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signedOut = player
}

func (g *Game) BoardView(perspective Color) BoardView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return newBoardView(g.board, perspective == White)
}

func (b *Board) clone() *Board {
	c := &Board{squares: b.squares}
	for row := range c.squares {
		for col := range c.squares[row] {
			if p := c.squares[row][col].piece; p != nil {
				cp := *p
				c.squares[row][col].piece = &cp
			}
		}
	}
	return c
}
