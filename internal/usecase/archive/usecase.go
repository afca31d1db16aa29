package archive

import (
	"context"

	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type useCase struct {
	repo     domain.ResultRepository
	records  <-chan domain.GameRecord
	archived *atomic.Int64
	logger   *zap.Logger
}

func New(repo domain.ResultRepository, records <-chan domain.GameRecord, logger *zap.Logger) *useCase {
	return &useCase{
		repo:     repo,
		records:  records,
		archived: atomic.NewInt64(0),
		logger:   logger,
	}
}

// Run stores every ended game until ctx is done. A record that fails to
// save is logged and skipped.
func (u *useCase) Run(ctx context.Context) error {
	for {
		select {
		case record := <-u.records:
			if err := u.repo.Save(ctx, record); err != nil {
				u.logger.Warn("failed to archive game", zap.Int("game_id", record.GameID), zap.Error(err))
				continue
			}
			u.archived.Inc()
			u.logger.Info("game archived", zap.Int("game_id", record.GameID))
		case <-ctx.Done():
			return nil
		}
	}
}

func (u *useCase) Standings(ctx context.Context) ([]domain.Standing, error) {
	standings, err := u.repo.Standings(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "load standings")
	}
	return standings, nil
}

func (u *useCase) History(ctx context.Context, player string) ([]domain.GameRecord, error) {
	if player == "" {
		return nil, errors.WithMessage(domain.ErrUnknownPlayer, "empty player name")
	}
	history, err := u.repo.History(ctx, player)
	if err != nil {
		return nil, errors.WithMessagef(err, "load history of '%s'", player)
	}
	return history, nil
}

func (u *useCase) Archived() int64 {
	return u.archived.Load()
}
