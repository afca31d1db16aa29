package registry

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/kiryu-dev/checkers/internal/domain"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const idleCursor = -1

type membership struct {
	cursor    int
	gameIDs   []int
	opponents []string
}

type useCase struct {
	factory     checkers.Factory
	games       map[int]*checkers.Game
	opponents   map[string]string
	members     map[string]*membership
	seen        map[int]map[string]bool
	nextID      int
	records     chan domain.GameRecord
	started     *atomic.Int64
	sweepPeriod time.Duration
	endedTTL    time.Duration
	mu          *sync.Mutex
	logger      *zap.Logger
}

// New creates an empty registry. New games are built by factory; records of
// ended games are published on a channel buffered to queueSize.
func New(factory checkers.Factory, queueSize int, sweepPeriod, endedTTL time.Duration,
	logger *zap.Logger) *useCase {
	return &useCase{
		factory:     factory,
		games:       make(map[int]*checkers.Game),
		opponents:   make(map[string]string),
		members:     make(map[string]*membership),
		seen:        make(map[int]map[string]bool),
		records:     make(chan domain.GameRecord, queueSize),
		started:     atomic.NewInt64(0),
		sweepPeriod: sweepPeriod,
		endedTTL:    endedTTL,
		mu:          &sync.Mutex{},
		logger:      logger,
	}
}

func (u *useCase) StartGame(red, white string) *checkers.Game {
	return u.StartGameWith(red, white, u.factory)
}

// StartGameWith pairs red and white in a game built by factory. The red
// player is the initiator and is moved onto the new game.
func (u *useCase) StartGameWith(red, white string, factory checkers.Factory) *checkers.Game {
	u.mu.Lock()
	defer u.mu.Unlock()
	id := u.nextID
	u.nextID++
	game := factory(id, red, white)
	u.games[id] = game
	u.opponents[red] = white
	u.opponents[white] = red

	redMember := u.member(red)
	redMember.cursor = id
	redMember.gameIDs = append(redMember.gameIDs, id)
	redMember.opponents = append(redMember.opponents, white)
	whiteMember := u.member(white)
	whiteMember.gameIDs = append(whiteMember.gameIDs, id)
	whiteMember.opponents = append(whiteMember.opponents, red)

	u.started.Inc()
	u.logger.Info("game started", zap.Int("game_id", id),
		zap.String("red", red), zap.String("white", white))
	return game
}

func (u *useCase) member(player string) *membership {
	m, ok := u.members[player]
	if !ok {
		m = &membership{cursor: idleCursor}
		u.members[player] = m
	}
	return m
}

// CurrentGame resolves the game the player is looking at.
func (u *useCase) CurrentGame(player string) (*checkers.Game, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	m, ok := u.members[player]
	if !ok || m.cursor == idleCursor {
		return nil, false
	}
	game, ok := u.games[m.cursor]
	return game, ok
}

func (u *useCase) ChangeGame(player string, id int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.member(player).cursor = id
}

// AllGames returns the player's live games in the order they were joined.
func (u *useCase) AllGames(player string) []*checkers.Game {
	u.mu.Lock()
	defer u.mu.Unlock()
	m, ok := u.members[player]
	if !ok {
		return nil
	}
	games := make([]*checkers.Game, 0, len(m.gameIDs))
	for _, id := range m.gameIDs {
		if game, ok := u.games[id]; ok {
			games = append(games, game)
		}
	}
	return games
}

func (u *useCase) Game(id int) (*checkers.Game, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	game, ok := u.games[id]
	return game, ok
}

// EndGame is a two-phase delete: the first call marks the game Ended and
// publishes its record, the game is dropped once both players have seen the
// result. Repeated calls for the same viewer change nothing.
func (u *useCase) EndGame(game *checkers.Game, viewer string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.endGame(game, viewer)
}

func (u *useCase) endGame(game *checkers.Game, viewer string) {
	if game.MarkEnded(time.Now()) {
		u.publish(domain.GameRecord{
			GameID:   game.ID(),
			Red:      game.RedPlayer(),
			White:    game.WhitePlayer(),
			Winner:   game.Winner(),
			Resigned: game.ResignedPlayer(),
			EndedAt:  game.EndedAt(),
		})
		u.logger.Info("game ended", zap.Int("game_id", game.ID()), zap.String("winner", game.Winner()))
	}
	if _, ok := u.games[game.ID()]; !ok || !game.HasPlayer(viewer) {
		return
	}
	seen, ok := u.seen[game.ID()]
	if !ok {
		seen = make(map[string]bool, 2)
		u.seen[game.ID()] = seen
	}
	seen[viewer] = true
	if seen[game.RedPlayer()] && seen[game.WhitePlayer()] {
		u.remove(game)
	}
}

func (u *useCase) remove(game *checkers.Game) {
	red, white := game.RedPlayer(), game.WhitePlayer()
	if u.opponents[red] == white {
		delete(u.opponents, red)
	}
	if u.opponents[white] == red {
		delete(u.opponents, white)
	}
	delete(u.games, game.ID())
	delete(u.seen, game.ID())
	u.logger.Info("game removed", zap.Int("game_id", game.ID()))
}

func (u *useCase) publish(record domain.GameRecord) {
	select {
	case u.records <- record:
	default:
		u.logger.Warn("record queue is full, dropping game record", zap.Int("game_id", record.GameID))
	}
}

func (u *useCase) ResignFromGame(game *checkers.Game, player string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	game.Leave(player)
	u.endGame(game, player)
	u.logger.Info("player resigned", zap.Int("game_id", game.ID()), zap.String("player", player))
}

func (u *useCase) Opponent(player string) (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	opponent, ok := u.opponents[player]
	return opponent, ok
}

func (u *useCase) Membership(player string) domain.Membership {
	u.mu.Lock()
	defer u.mu.Unlock()
	m, ok := u.members[player]
	if !ok {
		return domain.Membership{Cursor: idleCursor}
	}
	return domain.Membership{
		Cursor:    m.cursor,
		GameIDs:   slices.Clone(m.gameIDs),
		Opponents: slices.Clone(m.opponents),
	}
}

// RemoveCurrentGame drops id from the player's game list and sends the
// player home when they were looking at it.
func (u *useCase) RemoveCurrentGame(player string, id int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	m, ok := u.members[player]
	if !ok {
		return
	}
	if m.cursor == id {
		m.cursor = idleCursor
	}
	idx := slices.Index(m.gameIDs, id)
	if idx < 0 {
		return
	}
	m.gameIDs = slices.Delete(m.gameIDs, idx, idx+1)
	m.opponents = slices.Delete(m.opponents, idx, idx+1)
}

func (u *useCase) Records() <-chan domain.GameRecord {
	return u.records
}

func (u *useCase) Started() int64 {
	return u.started.Load()
}

// SweepEnded removes games that have stayed Ended for longer than ttl and
// returns how many live games are left.
func (u *useCase) SweepEnded(now time.Time, ttl time.Duration) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, game := range u.games {
		if game.State() == checkers.Ended && now.Sub(game.EndedAt()) > ttl {
			u.remove(game)
		}
	}
	return len(u.games)
}

// Run sweeps stale ended games until ctx is done.
func (u *useCase) Run(ctx context.Context) error {
	ticker := time.NewTicker(u.sweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			left := u.SweepEnded(now, u.endedTTL)
			u.logger.Debug("swept ended games", zap.Int("games", left))
		case <-ctx.Done():
			return nil
		}
	}
}
