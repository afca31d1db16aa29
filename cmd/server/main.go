package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiryu-dev/checkers/internal/adapters/presence"
	"github.com/kiryu-dev/checkers/internal/adapters/render"
	"github.com/kiryu-dev/checkers/internal/adapters/results"
	"github.com/kiryu-dev/checkers/internal/checkers/checkerstest"
	"github.com/kiryu-dev/checkers/internal/config"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/kiryu-dev/checkers/internal/transport/ws"
	"github.com/kiryu-dev/checkers/internal/usecase/archive"
	"github.com/kiryu-dev/checkers/internal/usecase/async"
	"github.com/kiryu-dev/checkers/internal/usecase/game"
	"github.com/kiryu-dev/checkers/internal/usecase/lobby"
	"github.com/kiryu-dev/checkers/internal/usecase/registry"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errCapturedSignal = errors.New("captured signal")

func main() {
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	factory, ok := checkerstest.Layout(cfg.Registry.Layout)
	if !ok {
		logger.Fatal("unknown board layout", zap.String("layout", cfg.Registry.Layout))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	presenceRepo, closePresence, err := newPresence(ctx, cfg.Lobby.RedisURL, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer closePresence()
	resultRepo, err := results.New(cfg.Archive.DSN)
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer func() {
		_ = resultRepo.Close()
	}()

	var (
		registry = registry.New(factory, cfg.Archive.QueueSize, cfg.Registry.SweepPeriod,
			cfg.Registry.EndedTTL, logger)
		lobby   = lobby.New(presenceRepo, registry, logger)
		async   = async.New(lobby, registry, logger)
		game    = game.New(lobby, registry, async, logger)
		archive = archive.New(resultRepo, registry.Records(), logger)
		server  = ws.New(cfg.Server.Addr, lobby, game, async, archive, registry,
			render.New(cfg.Render.Square), logger)
	)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, groupCtx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.WithMessagef(errCapturedSignal, "%v", s)
		case <-groupCtx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		return registry.Run(groupCtx)
	})
	errGroup.Go(func() error {
		return archive.Run(groupCtx)
	})
	errGroup.Go(func() error {
		if err := server.ListenAndServe(); err != nil {
			return err
		}
		return nil
	})
	errGroup.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Info("failed to shutdown http server: " + err.Error())
		}
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newPresence(ctx context.Context, redisURL string, logger *zap.Logger) (domain.PresenceRepository, func(), error) {
	if redisURL == "" {
		logger.Info("keeping presence in memory")
		return presence.NewMemory(), func() {}, nil
	}
	rdb, err := presence.Dial(ctx, redisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("keeping presence in redis", zap.String("addr", rdb.Options().Addr))
	return presence.NewRedis(rdb), func() {
		_ = rdb.Close()
	}, nil
}
