package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const winScore = 10

var (
	ErrNotBotTurn       = errors.New("it's not the bot's turn")
	ErrNoAvailableMoves = errors.New("no available moves")
)

// Decision - the outcome of a search: the chosen cell, its minimax value and the number of visited nodes.
type Decision struct {
	Cell    int
	Score   int
	Visited uint64
}

type BotService interface {
	BestMove(game *entity.Game) (Decision, error)
	MakeTurn(game *entity.Game) (int, error)
}

// botService plays O with an exhaustive minimax search. O maximizes, X minimizes.
type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// MakeTurn - searches for the best cell and plays it on the game.
func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	decision, err := that.BestMove(game)
	if err != nil {
		return -1, err
	}

	if err = game.MakeTurn(decision.Cell); err != nil {
		return -1, fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot made turn", "cell", decision.Cell, "score", decision.Score, "visited", decision.Visited)

	return decision.Cell, nil
}

// BestMove - runs the search on a scratch copy of the board, the game itself is not modified.
func (that *botService) BestMove(game *entity.Game) (Decision, error) {
	if game.IsFinished() || game.Turn != entity.PlayerO {
		return Decision{}, ErrNotBotTurn
	}

	s := &search{board: game.Board}

	best := Decision{Cell: -1, Score: math.MinInt}
	for cell := range s.board {
		if s.board[cell] != entity.EmptyCell {
			continue
		}

		s.board[cell] = entity.PlayerO
		score := s.minimax(0, false)
		s.board[cell] = entity.EmptyCell

		// strict comparison keeps the lowest cell among equal scores
		if score > best.Score {
			best.Cell = cell
			best.Score = score
		}
	}

	if best.Cell < 0 {
		return Decision{}, ErrNoAvailableMoves
	}

	best.Visited = s.visited

	return best, nil
}

type search struct {
	board   entity.Board
	visited uint64
}

// evaluate - scores a terminal board from O's point of view. ok is false while the board is not terminal.
func (that *search) evaluate() (score int, ok bool) {
	switch that.board.LineWinner() {
	case entity.PlayerO:
		return winScore, true
	case entity.PlayerX:
		return -winScore, true
	}

	if that.board.IsFull() {
		return 0, true
	}

	return 0, false
}

// minimax - every placement is undone before the next one, so the board is unchanged on return.
func (that *search) minimax(depth int, maximizing bool) int {
	that.visited++

	if score, ok := that.evaluate(); ok {
		switch {
		case score == winScore:
			return score - depth
		case score == -winScore:
			return score + depth
		default:
			return 0
		}
	}

	mark, best := entity.PlayerX, math.MaxInt
	if maximizing {
		mark, best = entity.PlayerO, math.MinInt
	}

	for cell := range that.board {
		if that.board[cell] != entity.EmptyCell {
			continue
		}

		that.board[cell] = mark
		score := that.minimax(depth+1, !maximizing)
		that.board[cell] = entity.EmptyCell

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
