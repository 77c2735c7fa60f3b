package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type memoryGame struct {
	mu   sync.RWMutex
	game *entity.Game
}

// NewMemoryGameRepository - used when no redis is configured; the snapshot lives as long as the process.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{}
}

func (that *memoryGame) Save(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game = game.Snapshot()

	return nil
}

func (that *memoryGame) Load(_ context.Context) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.game == nil {
		return nil, ErrGameNotFound
	}

	return that.game.Snapshot(), nil
}

func (that *memoryGame) Delete(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return ErrGameNotFound
	}

	that.game = nil

	return nil
}
