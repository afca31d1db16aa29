package async

import (
	"context"
	"slices"
	"strings"

	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	WaitingMessage  = "Waiting on the following opponents to respond: "
	RejectedMessage = "At least one of your opponents has rejected your request to switch to asynchronous mode. " +
		"If you sign out, you will be automatically resigned from those games. " +
		"The following opponents rejected your request: "
	ApprovedMessage = "All of your opponents have approved your request to switch to asynchronous mode!"
)

type useCase struct {
	lobby    domain.LobbyUseCase
	registry domain.RegistryUseCase
	logger   *zap.Logger
}

func New(lobby domain.LobbyUseCase, registry domain.RegistryUseCase, logger *zap.Logger) useCase {
	return useCase{
		lobby:    lobby,
		registry: registry,
		logger:   logger,
	}
}

// StartAsync asks the opponents of every game the player is in to switch
// to asynchronous mode. Games that are not Active ignore the request.
func (u useCase) StartAsync(ctx context.Context, session string) error {
	player, err := u.lobby.PlayerBySession(ctx, session)
	if err != nil {
		return err
	}
	for _, game := range u.registry.AllGames(player) {
		game.RequestAsync(player)
	}
	u.logger.Info("async mode requested", zap.String("player", player))
	return nil
}

func (u useCase) ConfirmAsync(ctx context.Context, session string) error {
	player, game, err := u.currentGame(ctx, session)
	if err != nil {
		return err
	}
	game.AcceptAsync(player)
	return nil
}

func (u useCase) DenyAsync(ctx context.Context, session string) error {
	player, game, err := u.currentGame(ctx, session)
	if err != nil {
		return err
	}
	game.RejectAsync(player)
	return nil
}

func (u useCase) currentGame(ctx context.Context, session string) (string, *checkers.Game, error) {
	player, err := u.lobby.PlayerBySession(ctx, session)
	if err != nil {
		return "", nil, err
	}
	game, ok := u.registry.CurrentGame(player)
	if !ok {
		return "", nil, errors.WithMessagef(domain.ErrNoCurrentGame, "player '%s'", player)
	}
	return player, game, nil
}

// WaitingForResponses maps each opponent to the state of the game in which
// player is still waiting on, or has not yet acknowledged, an answer.
func (u useCase) WaitingForResponses(player string) map[string]checkers.State {
	opponents := make(map[string]checkers.State)
	for _, game := range u.registry.AllGames(player) {
		state := game.State()
		if state.Negotiating() && game.IsAsyncRequester(player) {
			opponents[game.OpponentOf(player)] = state
		}
	}
	return opponents
}

func (u useCase) FinishAsyncRequest(player string) {
	for _, game := range u.registry.AllGames(player) {
		if game.IsAsyncRequester(player) {
			game.CompleteAsyncRequest()
		}
	}
}

// CheckResponses summarizes the answers to the player's request. Once no
// answer is pending the request is completed; the flag reports whether
// every opponent agreed.
func (u useCase) CheckResponses(player string) (domain.Notice, bool) {
	opponents := u.WaitingForResponses(player)
	if names := opponentNames(opponents, checkers.AsyncStart); names != "" {
		return domain.InfoNotice(WaitingMessage + names), false
	}
	u.FinishAsyncRequest(player)
	if names := opponentNames(opponents, checkers.AsyncDenied); names != "" {
		return domain.InfoNotice(RejectedMessage + names), false
	}
	return domain.InfoNotice(ApprovedMessage), true
}

func opponentNames(opponents map[string]checkers.State, state checkers.State) string {
	names := make([]string, 0, len(opponents))
	for name, s := range opponents {
		if s == state {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
