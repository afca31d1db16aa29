package ws

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type server struct {
	srv      *http.Server
	lobby    domain.LobbyUseCase
	game     domain.GameUseCase
	async    domain.AsyncUseCase
	archive  domain.ArchiveUseCase
	registry domain.RegistryUseCase
	renderer domain.BoardRenderer
	upgrader websocket.Upgrader
	ready    *atomic.Bool
	logger   *zap.Logger
}

func New(addr string, lobby domain.LobbyUseCase, game domain.GameUseCase, async domain.AsyncUseCase,
	archive domain.ArchiveUseCase, registry domain.RegistryUseCase, renderer domain.BoardRenderer,
	logger *zap.Logger) *server {
	s := &server{
		lobby:    lobby,
		game:     game,
		async:    async,
		archive:  archive,
		registry: registry,
		renderer: renderer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ready:  atomic.NewBool(false),
		logger: logger,
	}
	s.srv = &http.Server{Addr: addr, Handler: s.routes()}
	return s
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *server) ListenAndServe() error {
	s.logger.Info("starting listening address: " + s.srv.Addr)
	s.ready.Store(true)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithMessage(err, "listen and serve")
	}
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	s.ready.Store(false)
	return s.srv.Shutdown(ctx)
}

func (s *server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /game", s.serveWs)
	mux.HandleFunc("GET /health", s.healthCheck)
	mux.HandleFunc("POST /signin", s.signIn)
	mux.HandleFunc("POST /signout", s.signOut)
	mux.HandleFunc("GET /players", s.players)
	mux.HandleFunc("POST /checkTurn", s.notice(s.game.CheckTurn))
	mux.HandleFunc("POST /validateMove", s.validateMove)
	mux.HandleFunc("POST /backupMove", s.notice(s.game.BackupMove))
	mux.HandleFunc("POST /submitTurn", s.notice(s.game.SubmitTurn))
	mux.HandleFunc("POST /resignGame", s.notice(s.game.Resign))
	mux.HandleFunc("GET /game/view", s.viewGame)
	mux.HandleFunc("GET /game/board.png", s.boardImage)
	mux.HandleFunc("GET /standings", s.standings)
	mux.HandleFunc("GET /history", s.history)
	return mux
}
