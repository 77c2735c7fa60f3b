package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameUseCase interface {
	MakeTurn(ctx context.Context, cell int) (*entity.Game, error)
	Reset(ctx context.Context) *entity.Game
	State(ctx context.Context) *entity.Game
}

type GameHandler interface {
	MakeMove(ctx echo.Context) error
	Reset(ctx echo.Context) error
	State(ctx echo.Context) error
}

type moveRequest struct {
	Position *int `json:"position"`
}

type Response struct {
	Success   bool         `json:"success"`
	Error     string       `json:"error,omitempty"`
	GameState *entity.Game `json:"game_state,omitempty"`
}

type gameHandler struct {
	logger *slog.Logger
	game   gameUseCase
}

func NewGameHandler(logger *slog.Logger, game gameUseCase) GameHandler {
	return &gameHandler{
		logger: logger.With("component", "rest"),
		game:   game,
	}
}

func (that *gameHandler) MakeMove(ctx echo.Context) error {
	log := that.logger.With("method", "MakeMove")

	var req moveRequest
	if err := ctx.Bind(&req); err != nil {
		log.Warn("failed to bind move request", "error", err)
		return ctx.JSON(http.StatusBadRequest, Response{Error: "Invalid request body"})
	}

	if req.Position == nil {
		return ctx.JSON(http.StatusOK, Response{Error: "Invalid position"})
	}

	game, err := that.game.MakeTurn(ctx.Request().Context(), *req.Position)
	if err != nil {
		message, known := errorMessage(err)
		if !known {
			log.Error("failed to make turn", "error", err)
			return ctx.JSON(http.StatusInternalServerError, Response{Error: message})
		}

		return ctx.JSON(http.StatusOK, Response{Error: message})
	}

	return ctx.JSON(http.StatusOK, Response{Success: true, GameState: game})
}

func (that *gameHandler) Reset(ctx echo.Context) error {
	game := that.game.Reset(ctx.Request().Context())

	return ctx.JSON(http.StatusOK, Response{Success: true, GameState: game})
}

func (that *gameHandler) State(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, that.game.State(ctx.Request().Context()))
}

// errorMessage - maps game errors to client messages, known is false for unexpected errors.
func errorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		return "Invalid position", true
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "Not your turn", true
	case errors.Is(err, apperror.ErrCellOccupied):
		return "Invalid move: cell is already occupied", true
	case errors.Is(err, apperror.ErrGameFinished):
		return "Invalid move: game is already finished", true
	default:
		return "Internal Server Error", false
	}
}
