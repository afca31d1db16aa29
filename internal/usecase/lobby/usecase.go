package lobby

import (
	"context"
	"regexp"
	"slices"
	"sync"

	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	alphanumeric = regexp.MustCompile(`^.*[A-Za-z0-9]+.*$`)
	validName    = regexp.MustCompile(`^[A-Za-z0-9 ]*$`)
)

type useCase struct {
	presence domain.PresenceRepository
	registry domain.RegistryUseCase
	mu       *sync.Mutex
	logger   *zap.Logger
}

func New(presence domain.PresenceRepository, registry domain.RegistryUseCase, logger *zap.Logger) *useCase {
	return &useCase{
		presence: presence,
		registry: registry,
		mu:       &sync.Mutex{},
		logger:   logger,
	}
}

func isValidName(name string) bool {
	return alphanumeric.MatchString(name) && validName.MatchString(name)
}

// SignIn binds name to session. A name that signed out before is taken
// over by the new session.
func (u *useCase) SignIn(ctx context.Context, name, session string) error {
	if !isValidName(name) {
		return errors.WithMessagef(domain.ErrInvalidName, "'%s'", name)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	current, _, err := u.presence.Session(ctx, name)
	if err != nil {
		return errors.WithMessage(err, "look up player")
	}
	if current != "" {
		return errors.WithMessagef(domain.ErrNameInUse, "'%s'", name)
	}
	if _, err := u.presence.PlayerBySession(ctx, session); err == nil {
		return domain.ErrSessionInUse
	}
	if err := u.presence.Bind(ctx, name, session); err != nil {
		return errors.WithMessage(err, "bind session")
	}
	u.logger.Info("player signed in", zap.String("player", name))
	return nil
}

// SignOut resigns the player from every game still played synchronously
// and releases the session. Asynchronous games carry on.
func (u *useCase) SignOut(ctx context.Context, session string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	player, err := u.presence.PlayerBySession(ctx, session)
	if err != nil {
		return errors.WithMessage(err, "resolve session")
	}
	for _, game := range u.registry.AllGames(player) {
		switch game.State() {
		case checkers.AsyncActive, checkers.Ended:
			continue
		}
		game.SetSignedOutPlayer(player)
		u.registry.ResignFromGame(game, player)
		u.registry.RemoveCurrentGame(player, game.ID())
	}
	if err := u.presence.Release(ctx, player); err != nil {
		return errors.WithMessage(err, "release session")
	}
	u.logger.Info("player signed out", zap.String("player", player))
	return nil
}

func (u *useCase) PlayerBySession(ctx context.Context, session string) (string, error) {
	player, err := u.presence.PlayerBySession(ctx, session)
	if err != nil {
		return "", errors.WithMessage(err, "resolve session")
	}
	return player, nil
}

func (u *useCase) IsSignedIn(ctx context.Context, player string) (bool, error) {
	session, _, err := u.presence.Session(ctx, player)
	if err != nil {
		return false, errors.WithMessage(err, "look up player")
	}
	return session != "", nil
}

// SignedInPlayers lists everyone online except viewer.
func (u *useCase) SignedInPlayers(ctx context.Context, viewer string) ([]string, error) {
	players, err := u.presence.SignedIn(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "list signed in players")
	}
	return slices.DeleteFunc(players, func(p string) bool {
		return p == viewer
	}), nil
}

// Home moves the player back to the home view and describes it.
func (u *useCase) Home(ctx context.Context, session string) (domain.HomeView, error) {
	player, err := u.PlayerBySession(ctx, session)
	if err != nil {
		return domain.HomeView{}, err
	}
	u.registry.ChangeGame(player, -1)
	players, err := u.SignedInPlayers(ctx, player)
	if err != nil {
		return domain.HomeView{}, err
	}
	membership := u.registry.Membership(player)
	games := make([]domain.GameSummary, 0, len(membership.GameIDs))
	for i, id := range membership.GameIDs {
		games = append(games, domain.GameSummary{GameID: id, Opponent: membership.Opponents[i]})
	}
	return domain.HomeView{
		Player:  player,
		Players: players,
		Games:   games,
	}, nil
}
