package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const DefaultGameKey = "game:current"

var ErrGameNotFound = errors.New("game not found")

// GameRepository - keeps a snapshot of the single live game.
type GameRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	Load(ctx context.Context) (*entity.Game, error)
	Delete(ctx context.Context) error
}

type dbGame struct {
	client *redis.Client
	key    string
}

func NewGameRepository(client *redis.Client, key string) GameRepository {
	if key == "" {
		key = DefaultGameKey
	}

	return &dbGame{
		client: client,
		key:    key,
	}
}

func (that *dbGame) Save(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, that.key, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) Load(ctx context.Context) (*entity.Game, error) {
	response, err := that.client.Get(ctx, that.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) Delete(ctx context.Context) error {
	deleted, err := that.client.Del(ctx, that.key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}
