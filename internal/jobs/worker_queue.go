package jobs

import (
	"github.com/google/uuid"

	"github.com/evka/playforge/internal/generator"
	"github.com/evka/playforge/internal/worker"
)

// WorkerQueue implements JobQueue on top of a worker pool.
type WorkerQueue struct {
	pool    *worker.Pool
	service worker.GenerationServiceInterface
	tracker *Tracker
}

// NewWorkerQueue creates a WorkerQueue backed by the given pool and service.
func NewWorkerQueue(pool *worker.Pool, service worker.GenerationServiceInterface, tracker *Tracker) JobQueue {
	return &WorkerQueue{
		pool:    pool,
		service: service,
		tracker: tracker,
	}
}

func (q *WorkerQueue) EnqueueGeneration(req generator.Request, userID string) (string, error) {
	jobID := uuid.NewString()
	q.tracker.Create(jobID)

	err := q.pool.Submit(&worker.GenerateGameJob{
		Service: q.service,
		Tracker: q.tracker,
		JobID:   jobID,
		UserID:  userID,
		Request: req,
	})
	if err != nil {
		q.tracker.MarkFailed(jobID, err)
		return "", err
	}
	return jobID, nil
}

func (q *WorkerQueue) GenerationStatus(jobID string) (Status, bool) {
	return q.tracker.Get(jobID)
}
