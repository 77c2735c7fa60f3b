package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type mockBot struct {
	mock.Mock
}

func (that *mockBot) MakeTurn(game *entity.Game) (int, error) {
	args := that.Called(game)
	return args.Int(0), args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) Save(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) Load(ctx context.Context) (*entity.Game, error) {
	args := that.Called(ctx)

	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (that *mockGameRepo) Delete(ctx context.Context) error {
	args := that.Called(ctx)
	return args.Error(0)
}
