package ws

import (
	"context"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/kiryu-dev/checkers/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var errMissingClientKey = errors.Errorf("missing '%s' header", domain.ClientUuidHeader)

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, domain.HealthResponse{
		Ready:    s.ready.Load(),
		Games:    s.registry.Started(),
		Archived: s.archive.Archived(),
	})
}

func (s *server) signIn(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	req, err := utils.DecodeJson[domain.SignInPayload](r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.lobby.SignIn(r.Context(), req.Name, session); err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeHome(r.Context(), w, session)
}

func (s *server) signOut(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := s.lobby.SignOut(r.Context(), session); err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, domain.InfoNotice(signedOutMessage))
}

func (s *server) players(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeHome(r.Context(), w, session)
}

func (s *server) writeHome(ctx context.Context, w http.ResponseWriter, session string) {
	home, err := s.lobby.Home(ctx, session)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, home)
}

// notice serves a session-scoped action answered with a Notice.
func (s *server) notice(action func(ctx context.Context, session string) (domain.Notice, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.session(w, r)
		if !ok {
			return
		}
		notice, err := action(r.Context(), session)
		if err != nil {
			s.writeError(w, statusOf(err), err)
			return
		}
		s.writeJSON(w, notice)
	}
}

func (s *server) validateMove(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	move, err := utils.DecodeJson[domain.MovePayload](r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	notice, err := s.game.ValidateMove(r.Context(), session, move)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, notice)
}

func (s *server) viewGame(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	view, err := s.game.View(r.Context(), session)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, view)
}

func (s *server) boardImage(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	view, err := s.game.View(r.Context(), session)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	data, err := s.renderer.Render(view.Board)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(data); err != nil {
		s.logger.Warn(err.Error())
	}
}

func (s *server) standings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.archive.Standings(r.Context())
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, standings)
}

func (s *server) history(w http.ResponseWriter, r *http.Request) {
	history, err := s.archive.History(r.Context(), r.URL.Query().Get("player"))
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, history)
}

func (s *server) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	session := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if session == "" {
		s.writeError(w, http.StatusUnauthorized, errMissingClientKey)
		return "", false
	}
	return session, true
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNoCurrentGame),
		errors.Is(err, domain.ErrUnknownGame),
		errors.Is(err, domain.ErrUnknownPlayer):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrSelfPlay):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNameInUse),
		errors.Is(err, domain.ErrSessionInUse),
		errors.Is(err, domain.ErrPlayerBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := jsoniter.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn(err.Error())
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := jsoniter.NewEncoder(w).Encode(domain.ErrorPayload{Error: err.Error()}); err != nil {
		s.logger.Warn(err.Error())
	}
}
