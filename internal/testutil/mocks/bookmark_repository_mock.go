package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/evka/playforge/internal/models"
)

// MockBookmarkRepository is a mock implementation of repository.BookmarkRepository
type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) ListGameIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookmarkRepository) Exists(ctx context.Context, userID, gameID string) (bool, error) {
	args := m.Called(ctx, userID, gameID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkRepository) Add(ctx context.Context, b models.Bookmark) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookmarkRepository) Remove(ctx context.Context, userID, gameID string) error {
	args := m.Called(ctx, userID, gameID)
	return args.Error(0)
}
