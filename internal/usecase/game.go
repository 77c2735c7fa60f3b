package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

type botService interface {
	MakeTurn(game *entity.Game) (int, error)
}

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	Load(ctx context.Context) (*entity.Game, error)
	Delete(ctx context.Context) error
}

// GameUseCase - owns the one live game of the process. Every method holds mu for its whole unit of work,
// so a human turn and the bot's reply are observed as a single step.
type GameUseCase struct {
	logger *slog.Logger

	mu   sync.Mutex
	game *entity.Game

	bot      botService
	gameRepo gameRepo
}

func NewGameUseCase(logger *slog.Logger, bot botService, gameRepo gameRepo) *GameUseCase {
	return &GameUseCase{
		logger: logger.With("component", "usecase"),

		game: entity.NewGame(),

		bot:      bot,
		gameRepo: gameRepo,
	}
}

// Restore - replaces the live game with the stored snapshot, if there is one. A snapshot that could not
// come from legal play is ignored. A restored game waiting for O gets the bot's reply right away.
func (that *GameUseCase) Restore(ctx context.Context) error {
	log := that.logger.With("method", "Restore")

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameRepo.Load(ctx)
	if errors.Is(err, repository.ErrGameNotFound) {
		log.Info("no stored game, starting a new one")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}

	if err = game.Validate(); err != nil {
		log.Warn("stored game is invalid, starting a new one", "error", err)
		return nil
	}

	that.game = game
	log.Info("game restored", "turn", game.Turn, "game_over", game.GameOver)

	if that.replyIfPending(log) {
		that.save(ctx)
	}

	return nil
}

// MakeTurn - plays the human (X) move on cell and, if the game goes on, the bot's reply.
func (that *GameUseCase) MakeTurn(ctx context.Context, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "cell", cell)

	that.mu.Lock()
	defer that.mu.Unlock()

	if cell < 0 || cell >= len(that.game.Board) {
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	// a reply that failed earlier is retried before the human may move again
	if that.replyIfPending(log) {
		that.save(ctx)
	}

	if that.game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if that.game.Turn != entity.PlayerX {
		return nil, apperror.ErrNotYourTurn
	}

	if err := that.game.MakeTurn(cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	that.replyIfPending(log)

	if that.game.IsFinished() {
		log.Info("game finished", "winner", that.game.Winner)
	}

	that.save(ctx)

	return that.game.Snapshot(), nil
}

// replyIfPending - lets the bot move when the game is in progress with O to move. It reports whether
// the bot moved; a failure is logged and leaves O to move.
func (that *GameUseCase) replyIfPending(log *slog.Logger) bool {
	if that.game.IsFinished() || that.game.Turn != entity.PlayerO {
		return false
	}

	botCell, err := that.bot.MakeTurn(that.game)
	if err != nil {
		log.Error("bot failed to make turn", "error", err)
		return false
	}

	log.Debug("bot replied", "bot_cell", botCell)

	return true
}

// Reset - starts a new game and drops the stored snapshot. It always succeeds.
func (that *GameUseCase) Reset(ctx context.Context) *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.Reset()

	// Restore starts a new game when nothing is stored
	err := that.gameRepo.Delete(ctx)
	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		that.logger.Error("failed to delete stored game, overwriting it", "error", err)
		that.save(ctx)
	}

	that.logger.Info("game reset")

	return that.game.Snapshot()
}

// State - returns a snapshot of the live game.
func (that *GameUseCase) State(_ context.Context) *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Snapshot()
}

// save - mirrors the live game to the repository. The in-memory game stays authoritative, so a failed
// write is logged and does not undo the move.
func (that *GameUseCase) save(ctx context.Context) {
	if err := that.gameRepo.Save(ctx, that.game); err != nil {
		that.logger.Error("failed to save game", "error", err)
	}
}
