package game

import (
	"context"
	"strconv"

	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	lobby    domain.LobbyUseCase
	registry domain.RegistryUseCase
	async    domain.AsyncUseCase
	logger   *zap.Logger
}

func New(lobby domain.LobbyUseCase, registry domain.RegistryUseCase, async domain.AsyncUseCase,
	logger *zap.Logger) useCase {
	return useCase{
		lobby:    lobby,
		registry: registry,
		async:    async,
		logger:   logger,
	}
}

func (u useCase) resolve(ctx context.Context, session string) (string, *checkers.Game, error) {
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

// StartGame pairs the player, as Red, with opponent.
func (u useCase) StartGame(ctx context.Context, session, opponent string) (domain.GameView, error) {
	player, err := u.lobby.PlayerBySession(ctx, session)
	if err != nil {
		return domain.GameView{}, err
	}
	if opponent == player {
		return domain.GameView{}, domain.ErrSelfPlay
	}
	signedIn, err := u.lobby.IsSignedIn(ctx, opponent)
	if err != nil {
		return domain.GameView{}, errors.WithMessage(err, "check opponent")
	}
	if !signedIn {
		return domain.GameView{}, errors.WithMessagef(domain.ErrUnknownPlayer, "'%s'", opponent)
	}
	for _, game := range u.registry.AllGames(player) {
		if game.HasPlayer(opponent) && game.State() != checkers.Ended {
			return domain.GameView{}, errors.WithMessagef(domain.ErrPlayerBusy, "'%s'", opponent)
		}
	}
	game := u.registry.StartGame(player, opponent)
	return u.render(game, player), nil
}

// OpenGame moves the player onto game id. A negative id is the home view
// and yields no game.
func (u useCase) OpenGame(ctx context.Context, session string, id int) (*domain.GameView, error) {
	player, err := u.lobby.PlayerBySession(ctx, session)
	if err != nil {
		return nil, err
	}
	if id < 0 {
		u.registry.ChangeGame(player, -1)
		return nil, nil
	}
	game, ok := u.registry.Game(id)
	if !ok || !game.HasPlayer(player) {
		return nil, errors.WithMessagef(domain.ErrUnknownGame, "id %d", id)
	}
	u.registry.ChangeGame(player, id)
	view := u.render(game, player)
	return &view, nil
}

func (u useCase) View(ctx context.Context, session string) (domain.GameView, error) {
	player, game, err := u.resolve(ctx, session)
	if err != nil {
		return domain.GameView{}, err
	}
	return u.render(game, player), nil
}

// render builds the game page. Looking at a won game is what tears it
// down: each viewer drops it from their list and ends it once.
func (u useCase) render(game *checkers.Game, player string) domain.GameView {
	color := game.ColorOf(player)
	view := domain.GameView{
		GameID:      game.ID(),
		Red:         game.RedPlayer(),
		White:       game.WhitePlayer(),
		Viewer:      player,
		ActiveColor: game.Turn(),
	}
	switch state := game.State(); state {
	case checkers.AsyncStart:
		view.ActiveColor = game.OpponentTurnColor(player)
		if !game.IsAsyncRequester(player) {
			notice := domain.InfoNotice(asyncRequestMessage)
			view.Message = &notice
			view.AsyncRequest = true
		} else {
			u.checkResponses(&view, player)
		}
	case checkers.AsyncAccepted, checkers.AsyncDenied:
		view.ActiveColor = game.OpponentTurnColor(player)
		if game.IsAsyncRequester(player) {
			u.checkResponses(&view, player)
		}
	case checkers.Active, checkers.AsyncActive, checkers.Ended:
		view.AsyncMode = state == checkers.AsyncActive
		if winner, ok := game.ComputeWinner(); ok {
			view.Winner = winner
			u.registry.RemoveCurrentGame(player, game.ID())
			u.registry.EndGame(game, player)
		}
		if left := game.ResignedPlayer(); left != "" && left != player {
			notice := domain.InfoNotice(opponentLeftMessage)
			view.Message = &notice
		}
		if left := game.SignedOutPlayer(); left != "" && left != player {
			notice := domain.InfoNotice(opponentLeftMessage)
			view.Message = &notice
		}
	}
	view.State = game.State()
	view.Board = game.BoardView(color)
	return view
}

func (u useCase) checkResponses(view *domain.GameView, player string) {
	notice, asyncMode := u.async.CheckResponses(player)
	view.Message = &notice
	if asyncMode {
		view.AsyncMode = true
	}
}

// ValidateMove checks the move and queues it for the turn in progress.
func (u useCase) ValidateMove(ctx context.Context, session string, move domain.MovePayload) (domain.Notice, error) {
	player, game, err := u.resolve(ctx, session)
	if err != nil {
		return domain.Notice{}, err
	}
	m := checkers.ParseMove(move.Start, move.End)
	result := game.SubmitMove(player, m)
	if !result.Valid {
		u.logger.Debug("move rejected", zap.Int("game_id", game.ID()),
			zap.Stringer("move", m), zap.String("reason", string(result.Reason)))
		return domain.ErrorNotice(result.Message()), nil
	}
	return domain.InfoNotice(validMoveMessage), nil
}

func (u useCase) BackupMove(ctx context.Context, session string) (domain.Notice, error) {
	player, game, err := u.resolve(ctx, session)
	if err != nil {
		return domain.Notice{}, err
	}
	move, result := game.UndoLastMove(player)
	switch {
	case !result.Valid:
		return domain.ErrorNotice(result.Message()), nil
	case move.Kind == checkers.Jump:
		return domain.InfoNotice(backedUpJumpMove), nil
	default:
		return domain.InfoNotice(backedUpSimpleMove), nil
	}
}

func (u useCase) SubmitTurn(ctx context.Context, session string) (domain.Notice, error) {
	player, game, err := u.resolve(ctx, session)
	if err != nil {
		return domain.Notice{}, err
	}
	if !game.IsPlayersTurn(player) {
		return domain.ErrorNotice(checkers.ReasonNotYourTurn.Message()), nil
	}
	result := game.CommitTurn()
	if !result.Valid {
		return domain.ErrorNotice(result.Message()), nil
	}
	u.logger.Info("turn submitted", zap.Int("game_id", game.ID()), zap.String("player", player))
	return domain.InfoNotice(turnSubmittedMessage), nil
}

// CheckTurn answers "true" while the game is negotiating or over, so that
// polling clients reload the page.
func (u useCase) CheckTurn(ctx context.Context, session string) (domain.Notice, error) {
	player, game, err := u.resolve(ctx, session)
	if err != nil {
		return domain.Notice{}, err
	}
	if !game.State().Playable() {
		return domain.InfoNotice("true"), nil
	}
	return domain.InfoNotice(strconv.FormatBool(game.IsPlayersTurn(player))), nil
}

func (u useCase) Resign(ctx context.Context, session string) (domain.Notice, error) {
	player, game, err := u.resolve(ctx, session)
	if err != nil {
		return domain.Notice{}, err
	}
	u.registry.ResignFromGame(game, player)
	u.registry.RemoveCurrentGame(player, game.ID())
	return domain.InfoNotice(resignedMessage), nil
}
