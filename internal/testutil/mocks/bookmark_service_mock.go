package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/evka/playforge/internal/models"
)

// MockBookmarkService is a mock implementation of services.BookmarkService
type MockBookmarkService struct {
	mock.Mock
}

func (m *MockBookmarkService) Toggle(ctx context.Context, userID, gameID string) (bool, error) {
	args := m.Called(ctx, userID, gameID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkService) ListBookmarkedGames(ctx context.Context, userID string) ([]models.Game, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}
