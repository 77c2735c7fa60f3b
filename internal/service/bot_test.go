package service

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func newTestBot() BotService {
	return NewBotService(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
}

// gameWithBoard builds an in-progress game with O to move, bypassing the move history.
func gameWithBoard(board entity.Board) *entity.Game {
	return &entity.Game{
		Board: board,
		Turn:  entity.PlayerO,
	}
}

func TestBotService_BestMove(t *testing.T) {
	bot := newTestBot()

	t.Run("Opening move is a corner or the center", func(t *testing.T) {
		// Given: an empty board with O forced to move first
		game := gameWithBoard(entity.Board{})

		// When: searching for the best move
		decision, err := bot.BestMove(game)

		// Then: every opening draws, so the lowest corner is chosen
		require.NoError(t, err)
		assert.Contains(t, []int{0, 2, 4, 6, 8}, decision.Cell)
		assert.Equal(t, 0, decision.Cell)
		assert.Equal(t, 0, decision.Score)
		assert.Positive(t, decision.Visited)
	})

	t.Run("Blocks two X in a row", func(t *testing.T) {
		// Given: X threatens the top row
		game := gameWithBoard(entity.Board{
			entity.PlayerX, entity.PlayerX, "",
			"", entity.PlayerO, "",
			"", "", "",
		})

		// When: searching for the best move
		decision, err := bot.BestMove(game)

		// Then: O blocks at cell 2
		require.NoError(t, err)
		assert.Equal(t, 2, decision.Cell)
	})

	t.Run("Blocks a column threat", func(t *testing.T) {
		// Given: X threatens the left column
		game := gameWithBoard(entity.Board{
			entity.PlayerX, "", "",
			entity.PlayerX, entity.PlayerO, "",
			"", "", "",
		})

		// When: searching for the best move
		decision, err := bot.BestMove(game)

		// Then: O blocks at cell 6
		require.NoError(t, err)
		assert.Equal(t, 6, decision.Cell)
	})

	t.Run("Prefers winning over blocking", func(t *testing.T) {
		// Given: both X and O have two in a row
		game := gameWithBoard(entity.Board{
			entity.PlayerX, entity.PlayerX, "",
			entity.PlayerO, entity.PlayerO, "",
			"", "", entity.PlayerX,
		})

		// When: searching for the best move
		decision, err := bot.BestMove(game)

		// Then: O completes the middle row immediately
		require.NoError(t, err)
		assert.Equal(t, 5, decision.Cell)
		assert.Equal(t, winScore, decision.Score)
	})

	t.Run("Does not modify the game", func(t *testing.T) {
		// Given: a game in progress
		game := gameWithBoard(entity.Board{entity.PlayerX, "", "", "", "", "", "", "", ""})
		before := *game

		// When: searching for the best move
		_, err := bot.BestMove(game)

		// Then: the game is untouched
		require.NoError(t, err)
		assert.Equal(t, before, *game)
	})

	t.Run("Returns ErrNotBotTurn when X is to move", func(t *testing.T) {
		// Given: a fresh game, X to move
		game := entity.NewGame()

		// When: searching for the best move
		_, err := bot.BestMove(game)

		// Then: no move is produced
		require.ErrorIs(t, err, ErrNotBotTurn)
	})

	t.Run("Returns ErrNotBotTurn when the game is finished", func(t *testing.T) {
		// Given: a finished game that left O as the current player
		game := gameWithBoard(entity.Board{
			entity.PlayerO, entity.PlayerO, entity.PlayerO,
			entity.PlayerX, entity.PlayerX, "",
			entity.PlayerX, "", "",
		})
		game.GameOver = true
		game.Winner = entity.PlayerO

		// When: searching for the best move
		_, err := bot.BestMove(game)

		// Then: no move is produced
		require.ErrorIs(t, err, ErrNotBotTurn)
	})

	t.Run("Returns ErrNoAvailableMoves on a full board", func(t *testing.T) {
		// Given: a full board that was never marked as finished
		game := gameWithBoard(entity.Board{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
		})

		// When: searching for the best move
		_, err := bot.BestMove(game)

		// Then: no move is produced
		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}

func TestBotService_MakeTurn(t *testing.T) {
	bot := newTestBot()

	t.Run("Applies the chosen cell", func(t *testing.T) {
		// Given: X opened in the center
		game := entity.NewGame()
		require.NoError(t, game.MakeTurn(4))

		// When: the bot replies
		cell, err := bot.MakeTurn(game)

		// Then: O took a corner and it's X's turn again
		require.NoError(t, err)
		assert.Contains(t, []int{0, 2, 6, 8}, cell)
		assert.Equal(t, entity.PlayerO, game.Board[cell])
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Wins when possible", func(t *testing.T) {
		// Given: O can complete the diagonal
		game := gameWithBoard(entity.Board{
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
			"", entity.PlayerO, "",
			entity.PlayerX, "", "",
		})

		// When: the bot replies
		cell, err := bot.MakeTurn(game)

		// Then: the game is over with O as the winner
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
		assert.True(t, game.GameOver)
		assert.Equal(t, entity.PlayerO, game.Winner)
	})

	t.Run("Returns error and leaves game untouched when it's not its turn", func(t *testing.T) {
		game := entity.NewGame()

		cell, err := bot.MakeTurn(game)

		require.ErrorIs(t, err, ErrNotBotTurn)
		assert.Equal(t, -1, cell)
		assert.Equal(t, entity.NewGame(), game)
	})
}

// playAllLines walks every possible sequence of X moves, answering each with the bot, and fails if X ever wins.
func playAllLines(t *testing.T, bot BotService, game *entity.Game, stats map[string]int) {
	t.Helper()

	if game.GameOver {
		require.NotEqual(t, entity.PlayerX, game.Winner, "X won with board %v", game.Board)
		stats[game.Winner]++
		return
	}

	if game.Turn == entity.PlayerO {
		_, err := bot.MakeTurn(game)
		require.NoError(t, err)
		playAllLines(t, bot, game, stats)
		return
	}

	for _, cell := range game.Board.AvailableCells() {
		next := game.Snapshot()
		require.NoError(t, next.MakeTurn(cell))
		playAllLines(t, bot, next, stats)
	}
}

func TestBotService_NeverLoses(t *testing.T) {
	bot := newTestBot()

	t.Run("X moves first", func(t *testing.T) {
		// Given: a fresh game
		stats := map[string]int{}

		// When: every X strategy is played out against the bot
		playAllLines(t, bot, entity.NewGame(), stats)

		// Then: X never wins
		assert.Zero(t, stats[entity.PlayerX])
		assert.Positive(t, stats[entity.PlayerTie])
	})

	t.Run("O forced to move first", func(t *testing.T) {
		// Given: an empty board with O to move
		stats := map[string]int{}

		// When: every X strategy is played out against the bot
		playAllLines(t, bot, gameWithBoard(entity.Board{}), stats)

		// Then: X never wins
		assert.Zero(t, stats[entity.PlayerX])
	})
}
