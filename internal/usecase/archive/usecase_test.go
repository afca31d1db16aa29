package archive

import (
	"context"
	"testing"
	"time"

	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type resultRepositoryMock struct {
	mock.Mock
}

func (m *resultRepositoryMock) Save(ctx context.Context, record domain.GameRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *resultRepositoryMock) Standings(ctx context.Context) ([]domain.Standing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Standing), args.Error(1)
}

func (m *resultRepositoryMock) History(ctx context.Context, player string) ([]domain.GameRecord, error) {
	args := m.Called(ctx, player)
	return args.Get(0).([]domain.GameRecord), args.Error(1)
}

func TestRunArchivesRecords(t *testing.T) {
	repo := new(resultRepositoryMock)
	records := make(chan domain.GameRecord, 2)
	saved := domain.GameRecord{GameID: 1, Red: "alice", White: "bob", Winner: "bob"}
	failed := domain.GameRecord{GameID: 2, Red: "alice", White: "carol"}
	repo.On("Save", mock.Anything, saved).Return(nil)
	repo.On("Save", mock.Anything, failed).Return(errors.New("disk full"))

	u := New(repo, records, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- u.Run(ctx)
	}()

	records <- failed
	records <- saved
	require.Eventually(t, func() bool {
		return u.Archived() == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	repo.AssertExpectations(t)
	assert.Equal(t, int64(1), u.Archived())
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	repo := new(resultRepositoryMock)
	standings := []domain.Standing{{Player: "alice", Wins: 3}}
	history := []domain.GameRecord{{GameID: 4, Red: "alice", White: "bob"}}
	repo.On("Standings", ctx).Return(standings, nil)
	repo.On("History", ctx, "alice").Return(history, nil)
	repo.On("History", ctx, "bob").Return([]domain.GameRecord(nil), errors.New("closed"))

	u := New(repo, nil, zap.NewNop())

	got, err := u.Standings(ctx)
	require.NoError(t, err)
	assert.Equal(t, standings, got)

	records, err := u.History(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, history, records)

	_, err = u.History(ctx, "bob")
	assert.Error(t, err)
	_, err = u.History(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnknownPlayer)
}
