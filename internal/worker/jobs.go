package worker

import (
	"context"

	"github.com/evka/playforge/internal/generator"
	"github.com/evka/playforge/internal/logger"
)

// GenerateGameJob runs one game generation in the background and reports the
// outcome to the tracker.
type GenerateGameJob struct {
	Service GenerationServiceInterface
	Tracker GenerationTracker
	JobID   string
	UserID  string
	Request generator.Request
}

func (j *GenerateGameJob) Name() string { return "generate_game" }

func (j *GenerateGameJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"job_id": j.JobID,
		"topic":  j.Request.Topic,
	})
	log.Info("starting background generation")
	j.Tracker.MarkRunning(j.JobID)

	game, err := j.Service.GenerateGame(ctx, j.Request, j.UserID)
	if err != nil {
		j.Tracker.MarkFailed(j.JobID, err)
		return err
	}

	j.Tracker.MarkDone(j.JobID, game.ID)
	log.Info("generated game %s (%s)", game.ID, game.Title)
	return nil
}
