package presence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repositories(t *testing.T) map[string]domain.PresenceRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
	})
	return map[string]domain.PresenceRepository{
		"memory": NewMemory(),
		"redis":  NewRedis(rdb),
	}
}

func TestPresence(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, known, err := repo.Session(ctx, "alice")
			require.NoError(t, err)
			assert.False(t, known)
			_, err = repo.PlayerBySession(ctx, "s1")
			assert.ErrorIs(t, err, domain.ErrNotSignedIn)

			require.NoError(t, repo.Bind(ctx, "alice", "s1"))
			require.NoError(t, repo.Bind(ctx, "bob", "s2"))
			player, err := repo.PlayerBySession(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, "alice", player)

			players, err := repo.SignedIn(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"alice", "bob"}, players)

			require.NoError(t, repo.Release(ctx, "alice"))
			session, known, err := repo.Session(ctx, "alice")
			require.NoError(t, err)
			assert.True(t, known)
			assert.Empty(t, session)
			_, err = repo.PlayerBySession(ctx, "s1")
			assert.ErrorIs(t, err, domain.ErrNotSignedIn)
			players, err = repo.SignedIn(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"bob"}, players)

			require.NoError(t, repo.Release(ctx, "nobody"))
		})
	}
}

func TestRebindDropsOldSession(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Bind(ctx, "alice", "s1"))
			require.NoError(t, repo.Bind(ctx, "alice", "s9"))

			_, err := repo.PlayerBySession(ctx, "s1")
			assert.ErrorIs(t, err, domain.ErrNotSignedIn)
			session, _, err := repo.Session(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, "s9", session)
		})
	}
}

func TestDialRejectsBadURL(t *testing.T) {
	_, err := Dial(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := Dial(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, rdb.Close())
}
