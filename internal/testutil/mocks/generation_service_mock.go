package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/evka/playforge/internal/generator"
	"github.com/evka/playforge/internal/models"
)

// MockGenerationService is a mock implementation of services.GenerationService
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateGame(ctx context.Context, req generator.Request, userID string) (*models.Game, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}
