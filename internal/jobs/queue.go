// Package jobs exposes background job enqueueing and status tracking to the
// API layer.
package jobs

import "github.com/evka/playforge/internal/generator"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueGeneration(req generator.Request, userID string) (jobID string, err error)
	GenerationStatus(jobID string) (Status, bool)
}
