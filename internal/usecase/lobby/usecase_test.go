package lobby

import (
	"context"
	"testing"
	"time"

	"github.com/kiryu-dev/checkers/internal/adapters/presence"
	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/kiryu-dev/checkers/internal/usecase/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLobby(t *testing.T) (*useCase, domain.RegistryUseCase) {
	t.Helper()
	reg := registry.New(checkers.NewGame, 16, time.Minute, time.Hour, zap.NewNop())
	return New(presence.NewMemory(), reg, zap.NewNop()), reg
}

func TestNameValidation(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"alice", true},
		{"Player 2", true},
		{" x ", true},
		{"", false},
		{"   ", false},
		{"bob!", false},
		{"ünicode", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, isValidName(tt.name), "%q", tt.name)
	}
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	l, _ := newLobby(t)

	require.NoError(t, l.SignIn(ctx, "alice", "s1"))
	assert.ErrorIs(t, l.SignIn(ctx, "alice", "s2"), domain.ErrNameInUse)
	assert.ErrorIs(t, l.SignIn(ctx, "bob?", "s2"), domain.ErrInvalidName)
	assert.ErrorIs(t, l.SignIn(ctx, "bob", "s1"), domain.ErrSessionInUse)
	require.NoError(t, l.SignIn(ctx, "bob", "s2"))

	player, err := l.PlayerBySession(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "bob", player)
	_, err = l.PlayerBySession(ctx, "s3")
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)

	players, err := l.SignedInPlayers(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, players)
}

func TestSignOutKeepsThePlayerKnown(t *testing.T) {
	ctx := context.Background()
	l, _ := newLobby(t)
	require.NoError(t, l.SignIn(ctx, "alice", "s1"))
	require.NoError(t, l.SignOut(ctx, "s1"))

	signedIn, err := l.IsSignedIn(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, signedIn)

	require.NoError(t, l.SignIn(ctx, "alice", "s7"))
	player, err := l.PlayerBySession(ctx, "s7")
	require.NoError(t, err)
	assert.Equal(t, "alice", player)

	assert.ErrorIs(t, l.SignOut(ctx, "unknown"), domain.ErrNotSignedIn)
}

func TestSignOutResignsSynchronousGames(t *testing.T) {
	ctx := context.Background()
	l, reg := newLobby(t)
	require.NoError(t, l.SignIn(ctx, "alice", "s1"))
	require.NoError(t, l.SignIn(ctx, "bob", "s2"))
	require.NoError(t, l.SignIn(ctx, "carol", "s3"))

	sync := reg.StartGame("alice", "bob")
	async := reg.StartGame("alice", "carol")
	async.RequestAsync("alice")
	async.AcceptAsync("carol")
	async.CompleteAsyncRequest()

	require.NoError(t, l.SignOut(ctx, "s1"))

	assert.Equal(t, checkers.Ended, sync.State())
	assert.Equal(t, "alice", sync.ResignedPlayer())
	assert.Equal(t, "alice", sync.SignedOutPlayer())
	assert.Equal(t, "bob", sync.Winner())

	assert.Equal(t, checkers.AsyncActive, async.State())
	assert.Empty(t, async.ResignedPlayer())

	assert.Equal(t, []int{async.ID()}, reg.Membership("alice").GameIDs)
}

func TestHome(t *testing.T) {
	ctx := context.Background()
	l, reg := newLobby(t)
	require.NoError(t, l.SignIn(ctx, "alice", "s1"))
	require.NoError(t, l.SignIn(ctx, "bob", "s2"))
	game := reg.StartGame("alice", "bob")

	home, err := l.Home(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", home.Player)
	assert.Equal(t, []string{"bob"}, home.Players)
	assert.Equal(t, []domain.GameSummary{{GameID: game.ID(), Opponent: "bob"}}, home.Games)

	_, ok := reg.CurrentGame("alice")
	assert.False(t, ok, "the home view leaves the current game")

	_, err = l.Home(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)
}
