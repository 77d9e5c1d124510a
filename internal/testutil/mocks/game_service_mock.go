package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/evka/playforge/internal/gamespec"
	"github.com/evka/playforge/internal/models"
)

// MockGameService is a mock implementation of services.GameService
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) GetGame(ctx context.Context, id, userID string) (*models.GameWithBookmark, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameWithBookmark), args.Error(1)
}

func (m *MockGameService) ListGames(ctx context.Context, filter models.GameFilter, userID string) ([]models.GameWithBookmark, int, error) {
	args := m.Called(ctx, filter, userID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.GameWithBookmark), args.Int(1), args.Error(2)
}

func (m *MockGameService) CreateGame(ctx context.Context, game models.Game, userID string) (*models.Game, error) {
	args := m.Called(ctx, game, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) UpdateGame(ctx context.Context, game models.Game, userID string) (*models.Game, error) {
	args := m.Called(ctx, game, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) DeleteGame(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockGameService) LoadSpec(ctx context.Context, id string) (*gamespec.GameSpec, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gamespec.GameSpec), args.Error(1)
}

func (m *MockGameService) RecordPlay(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameService) LikeGame(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
