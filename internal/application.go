package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/console"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
)

const shutdownTimeout = 5 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the HTTP server until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	game, closeStorage, err := NewGame(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	server := rest.New(logger, game)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Start(conf.HTTPPort)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		return server.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// RunConsole - plays the game on the given streams until the player quits.
func RunConsole(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	ctx, cancel := signalContext(logger.With("component", "app"))
	defer cancel()

	game, closeStorage, err := NewGame(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	if err = console.New(logger, game, in, out).Run(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}

// NewGame - builds the game use case with the configured storage and restores the stored game.
// The returned func releases the storage.
func NewGame(ctx context.Context, logger *slog.Logger, conf *config.Config) (*usecase.GameUseCase, func(), error) {
	log := logger.With("component", "app")

	gameRepo := repository.NewMemoryGameRepository()
	closeStorage := func() {}

	if conf.Redis.Enabled {
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		gameRepo = repository.NewGameRepository(redisStorage, conf.Redis.Key)
		closeStorage = func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}
	}

	game := usecase.NewGameUseCase(logger, service.NewBotService(logger), gameRepo)
	if err := game.Restore(ctx); err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("could not restore game: %w", err)
	}

	return game, closeStorage, nil
}

func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}
