package ws

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/kiryu-dev/checkers/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const signedOutMessage = "You have signed out."

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	session := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if session == "" {
		session = uuid.NewString()
		s.logger.Info("empty client key, assigned a new session", zap.String("session", session))
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err.Error())
		return
	}
	client := newClient(conn, session)
	defer client.Close()
	s.logger.Info("new connection", zap.String("session", session))
	s.handleClient(r.Context(), client)
}

// handleClient answers every command of the client until the connection
// drops.
func (s *server) handleClient(ctx context.Context, client domain.Client) {
	for {
		msg, err := client.ReadMessage()
		switch {
		case errors.Is(err, domain.ErrConnectionClosed):
			s.logger.Info("connection closed", zap.String("session", client.Uuid()))
			return
		case err != nil:
			s.logger.Warn(err.Error(), zap.String("session", client.Uuid()))
			return
		}
		if err := client.WriteMessage(s.dispatch(ctx, client.Uuid(), msg)); err != nil {
			s.logger.Warn(err.Error(), zap.String("session", client.Uuid()))
			return
		}
	}
}

// dispatch runs one command and wraps its outcome into the reply frame.
func (s *server) dispatch(ctx context.Context, session string, msg domain.Message) domain.Message {
	reply, err := s.handle(ctx, session, msg)
	if err != nil {
		s.logger.Warn("command failed", zap.Stringer("type", msg.Type), zap.Error(err))
		return domain.Message{
			Type:    domain.ErrorReply,
			Payload: domain.ErrorPayload{Error: err.Error()},
		}
	}
	return reply
}

func (s *server) handle(ctx context.Context, session string, msg domain.Message) (domain.Message, error) {
	switch msg.Type {
	case domain.SignIn:
		p, err := decodePayload[domain.SignInPayload](msg)
		if err != nil {
			return domain.Message{}, err
		}
		if err := s.lobby.SignIn(ctx, p.Name, session); err != nil {
			return domain.Message{}, err
		}
		return s.home(ctx, session)
	case domain.SignOut:
		if err := s.lobby.SignOut(ctx, session); err != nil {
			return domain.Message{}, err
		}
		return noticeReply(domain.InfoNotice(signedOutMessage)), nil
	case domain.ListPlayers:
		return s.home(ctx, session)
	case domain.StartGame:
		p, err := decodePayload[domain.StartGamePayload](msg)
		if err != nil {
			return domain.Message{}, err
		}
		view, err := s.game.StartGame(ctx, session, p.Opponent)
		if err != nil {
			return domain.Message{}, err
		}
		return gameViewReply(view), nil
	case domain.OpenGame:
		p, err := decodePayload[domain.OpenGamePayload](msg)
		if err != nil {
			return domain.Message{}, err
		}
		view, err := s.game.OpenGame(ctx, session, p.GameID)
		switch {
		case err != nil:
			return domain.Message{}, err
		case view == nil:
			return s.home(ctx, session)
		}
		return gameViewReply(*view), nil
	case domain.ViewGame:
		return s.currentView(ctx, session)
	case domain.ValidateMove:
		p, err := decodePayload[domain.MovePayload](msg)
		if err != nil {
			return domain.Message{}, err
		}
		return noticeResult(s.game.ValidateMove(ctx, session, p))
	case domain.BackupMove:
		return noticeResult(s.game.BackupMove(ctx, session))
	case domain.SubmitTurn:
		return noticeResult(s.game.SubmitTurn(ctx, session))
	case domain.CheckTurn:
		return noticeResult(s.game.CheckTurn(ctx, session))
	case domain.Resign:
		return noticeResult(s.game.Resign(ctx, session))
	case domain.StartAsync:
		if err := s.async.StartAsync(ctx, session); err != nil {
			return domain.Message{}, err
		}
		return s.currentView(ctx, session)
	case domain.ConfirmAsync:
		if err := s.async.ConfirmAsync(ctx, session); err != nil {
			return domain.Message{}, err
		}
		return s.currentView(ctx, session)
	case domain.DenyAsync:
		if err := s.async.DenyAsync(ctx, session); err != nil {
			return domain.Message{}, err
		}
		return s.currentView(ctx, session)
	default:
		return domain.Message{}, errors.Errorf("unexpected message type '%v'", msg.Type)
	}
}

func decodePayload[T any](msg domain.Message) (T, error) {
	if msg.Payload == nil {
		return *new(T), errors.WithMessagef(domain.ErrEmptyMessage, "'%v' payload", msg.Type)
	}
	v, err := utils.UnmarshalJson[T](msg.Payload)
	if err != nil {
		return *new(T), errors.WithMessagef(err, "unmarshal '%v' payload", msg.Type)
	}
	return v, nil
}

// currentView answers with the open game, or the home view when there is none.
func (s *server) currentView(ctx context.Context, session string) (domain.Message, error) {
	view, err := s.game.View(ctx, session)
	switch {
	case errors.Is(err, domain.ErrNoCurrentGame):
		return s.home(ctx, session)
	case err != nil:
		return domain.Message{}, err
	}
	return gameViewReply(view), nil
}

func (s *server) home(ctx context.Context, session string) (domain.Message, error) {
	home, err := s.lobby.Home(ctx, session)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{Type: domain.PlayersReply, Payload: home}, nil
}

func gameViewReply(view domain.GameView) domain.Message {
	return domain.Message{Type: domain.GameViewReply, Payload: view}
}

func noticeReply(notice domain.Notice) domain.Message {
	return domain.Message{Type: domain.Reply, Payload: notice}
}

func noticeResult(notice domain.Notice, err error) (domain.Message, error) {
	if err != nil {
		return domain.Message{}, err
	}
	return noticeReply(notice), nil
}
