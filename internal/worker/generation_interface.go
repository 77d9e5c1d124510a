package worker

import (
	"context"

	"github.com/evka/playforge/internal/generator"
	"github.com/evka/playforge/internal/models"
)

// GenerationServiceInterface is the part of the generation service background
// jobs need.
type GenerationServiceInterface interface {
	GenerateGame(ctx context.Context, req generator.Request, userID string) (*models.Game, error)
}

// GenerationTracker receives job lifecycle updates so callers can poll for
// the result.
type GenerationTracker interface {
	MarkRunning(jobID string)
	MarkDone(jobID, gameID string)
	MarkFailed(jobID string, err error)
}
