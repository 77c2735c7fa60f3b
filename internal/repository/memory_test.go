package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Load returns ErrGameNotFound when empty", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		game, err := gameRepo.Load(ctx)

		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, game)
	})

	t.Run("Save stores a copy", func(t *testing.T) {
		// Given: a saved game
		gameRepo := NewMemoryGameRepository()
		game := entity.NewGame()
		require.NoError(t, gameRepo.Save(ctx, game))

		// When: the original game changes after saving
		require.NoError(t, game.MakeTurn(0))

		// Then: the stored snapshot is unaffected
		loaded, err := gameRepo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(), loaded)
	})

	t.Run("Delete removes the snapshot", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.Save(ctx, entity.NewGame()))

		require.NoError(t, gameRepo.Delete(ctx))

		_, err := gameRepo.Load(ctx)
		require.ErrorIs(t, err, ErrGameNotFound)
		require.ErrorIs(t, gameRepo.Delete(ctx), ErrGameNotFound)
	})
}
