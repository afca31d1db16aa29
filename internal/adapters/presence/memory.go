package presence

import (
	"context"
	"slices"
	"sync"

	"github.com/kiryu-dev/checkers/internal/domain"
)

type memoryRepository struct {
	players  map[string]string
	sessions map[string]string
	mu       *sync.RWMutex
}

func NewMemory() *memoryRepository {
	return &memoryRepository{
		players:  make(map[string]string),
		sessions: make(map[string]string),
		mu:       &sync.RWMutex{},
	}
}

func (r *memoryRepository) Bind(_ context.Context, player, session string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old := r.players[player]; old != "" {
		delete(r.sessions, old)
	}
	r.players[player] = session
	r.sessions[session] = player
	return nil
}

func (r *memoryRepository) Release(_ context.Context, player string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.players[player]
	if !ok {
		return nil
	}
	delete(r.sessions, session)
	r.players[player] = ""
	return nil
}

func (r *memoryRepository) Session(_ context.Context, player string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.players[player]
	return session, ok, nil
}

func (r *memoryRepository) PlayerBySession(_ context.Context, session string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.sessions[session]
	if !ok {
		return "", domain.ErrNotSignedIn
	}
	return player, nil
}

func (r *memoryRepository) SignedIn(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	players := make([]string, 0, len(r.sessions))
	for _, player := range r.sessions {
		players = append(players, player)
	}
	slices.Sort(players)
	return players, nil
}
