package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
registry:
  ended_ttl: 30s
  layout: doubleJump
lobby:
  redis_url: redis://localhost:6379/0
`)
	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.Registry.EndedTTL)
	assert.Equal(t, time.Minute, cfg.Registry.SweepPeriod)
	assert.Equal(t, "doubleJump", cfg.Registry.Layout)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Lobby.RedisURL)
	assert.Equal(t, ":memory:", cfg.Archive.DSN)
	assert.Equal(t, 64, cfg.Archive.QueueSize)
	assert.Equal(t, 48, cfg.Render.Square)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHECKERS_ADDR", ":7070")
	t.Setenv("CHECKERS_ARCHIVE_QUEUE_SIZE", "8")
	t.Setenv("CHECKERS_LOG_DEVELOPMENT", "true")
	cfg, err := New(writeConfig(t, "server:\n  addr: \":9090\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Archive.QueueSize)
	assert.True(t, cfg.Log.Development)
}

func TestValidation(t *testing.T) {
	_, err := New(writeConfig(t, "server:\n  addr: \"\"\n"))
	assert.ErrorIs(t, err, ErrEmptyAddr)

	_, err = New(writeConfig(t, "archive:\n  queue_size: 0\n"))
	assert.ErrorIs(t, err, ErrBadQueueSize)

	_, err = New(writeConfig(t, "registry:\n  sweep_period: -1s\n"))
	assert.ErrorIs(t, err, ErrBadSweepPeriod)

	_, err = New(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
