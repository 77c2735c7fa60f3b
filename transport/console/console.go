package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameUseCase interface {
	MakeTurn(ctx context.Context, cell int) (*entity.Game, error)
	Reset(ctx context.Context) *entity.Game
	State(ctx context.Context) *entity.Game
}

// Console plays the game over a line-oriented text stream.
type Console struct {
	logger *slog.Logger
	game   gameUseCase

	in  *bufio.Scanner
	out io.Writer
}

func New(logger *slog.Logger, game gameUseCase, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		game:   game,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run - reads commands until "quit", end of input or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	that.printf("You are X. Enter a cell 0-8, \"reset\", \"state\" or \"quit\".\n")
	that.render(that.game.State(ctx))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		that.printf("> ")
		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		switch command := strings.TrimSpace(strings.ToLower(that.in.Text())); command {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "reset":
			that.render(that.game.Reset(ctx))
		case "state":
			that.render(that.game.State(ctx))
		default:
			that.move(ctx, command)
		}
	}
}

func (that *Console) move(ctx context.Context, command string) {
	cell, err := strconv.Atoi(command)
	if err != nil {
		that.printf("Unknown command %q\n", command)
		return
	}

	game, err := that.game.MakeTurn(ctx, cell)
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		that.printf("Invalid position, use 0-8\n")
	case errors.Is(err, apperror.ErrCellOccupied):
		that.printf("Cell %d is already taken\n", cell)
	case errors.Is(err, apperror.ErrGameFinished):
		that.printf("The game is over, type \"reset\" to play again\n")
	case errors.Is(err, apperror.ErrNotYourTurn):
		that.printf("Not your turn\n")
	case err != nil:
		that.logger.Error("failed to make turn", "error", err)
		that.printf("Something went wrong: %v\n", err)
	default:
		that.render(game)
	}
}

func (that *Console) render(game *entity.Game) {
	var sb strings.Builder

	for row := range 3 {
		cells := make([]string, 3)
		for col := range 3 {
			i := row*3 + col
			cells[col] = game.Board[i]
			if cells[col] == entity.EmptyCell {
				cells[col] = strconv.Itoa(i)
			}
		}

		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	switch {
	case !game.GameOver:
		sb.WriteString(fmt.Sprintf("Turn: %s\n", game.Turn))
	case game.Winner == entity.PlayerTie:
		sb.WriteString("It's a tie!\n")
	default:
		sb.WriteString(fmt.Sprintf("%s wins!\n", game.Winner))
	}

	that.printf("%s", sb.String())
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Warn("failed to write output", "error", err)
	}
}
