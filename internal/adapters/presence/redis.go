package presence

import (
	"context"
	"slices"

	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	playersKey  = "checkers:presence:players"
	sessionsKey = "checkers:presence:sessions"
)

// redisRepository keeps two hashes: player -> session ("" once signed out)
// and session -> player.
type redisRepository struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) redisRepository {
	return redisRepository{rdb: rdb}
}

// Dial connects to the server at url and checks it answers.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.WithMessage(err, "parse redis url")
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.WithMessage(err, "redis ping")
	}
	return rdb, nil
}

func (r redisRepository) Bind(ctx context.Context, player, session string) error {
	old, err := r.rdb.HGet(ctx, playersKey, player).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.WithMessage(err, "get player session")
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if old != "" {
			pipe.HDel(ctx, sessionsKey, old)
		}
		pipe.HSet(ctx, playersKey, player, session)
		pipe.HSet(ctx, sessionsKey, session, player)
		return nil
	})
	if err != nil {
		return errors.WithMessagef(err, "bind player '%s'", player)
	}
	return nil
}

func (r redisRepository) Release(ctx context.Context, player string) error {
	session, err := r.rdb.HGet(ctx, playersKey, player).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		return errors.WithMessage(err, "get player session")
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, sessionsKey, session)
		pipe.HSet(ctx, playersKey, player, "")
		return nil
	})
	if err != nil {
		return errors.WithMessagef(err, "release player '%s'", player)
	}
	return nil
}

func (r redisRepository) Session(ctx context.Context, player string) (string, bool, error) {
	session, err := r.rdb.HGet(ctx, playersKey, player).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, errors.WithMessage(err, "get player session")
	}
	return session, true, nil
}

func (r redisRepository) PlayerBySession(ctx context.Context, session string) (string, error) {
	player, err := r.rdb.HGet(ctx, sessionsKey, session).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", domain.ErrNotSignedIn
	case err != nil:
		return "", errors.WithMessage(err, "get session player")
	}
	return player, nil
}

func (r redisRepository) SignedIn(ctx context.Context) ([]string, error) {
	players, err := r.rdb.HVals(ctx, sessionsKey).Result()
	if err != nil {
		return nil, errors.WithMessage(err, "list sessions")
	}
	slices.Sort(players)
	return players, nil
}
