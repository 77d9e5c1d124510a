package jobs

import (
	"sync"
	"time"
)

// JobState is the lifecycle stage of a tracked job.
type JobState string

const (
	StatePending JobState = "pending"
	StateRunning JobState = "running"
	StateDone    JobState = "done"
	StateFailed  JobState = "failed"
)

// Status is the pollable view of a background job.
type Status struct {
	JobID     string    `json:"jobId"`
	State     JobState  `json:"state"`
	GameID    string    `json:"gameId,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tracker keeps job statuses in memory. Finished entries are dropped after a
// retention window so pollers that never come back do not leak memory.
type Tracker struct {
	mu        sync.Mutex
	statuses  map[string]Status
	retention time.Duration
	now       func() time.Time
}

// NewTracker creates a tracker that keeps finished jobs for the given
// retention window.
func NewTracker(retention time.Duration) *Tracker {
	if retention <= 0 {
		retention = time.Hour
	}
	return &Tracker{
		statuses:  make(map[string]Status),
		retention: retention,
		now:       time.Now,
	}
}

// Create registers a new pending job.
func (t *Tracker) Create(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prune()
	now := t.now()
	t.statuses[jobID] = Status{JobID: jobID, State: StatePending, CreatedAt: now, UpdatedAt: now}
}

// Get returns the status of a job.
func (t *Tracker) Get(jobID string) (Status, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.statuses[jobID]
	return s, ok
}

func (t *Tracker) MarkRunning(jobID string) {
	t.update(jobID, func(s *Status) { s.State = StateRunning })
}

func (t *Tracker) MarkDone(jobID, gameID string) {
	t.update(jobID, func(s *Status) {
		s.State = StateDone
		s.GameID = gameID
	})
}

func (t *Tracker) MarkFailed(jobID string, err error) {
	t.update(jobID, func(s *Status) {
		s.State = StateFailed
		s.Error = err.Error()
	})
}

func (t *Tracker) update(jobID string, fn func(*Status)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.statuses[jobID]
	if !ok {
		return
	}
	fn(&s)
	s.UpdatedAt = t.now()
	t.statuses[jobID] = s
}

// prune drops finished entries past the retention window. Callers hold the
// lock.
func (t *Tracker) prune() {
	cutoff := t.now().Add(-t.retention)
	for id, s := range t.statuses {
		if (s.State == StateDone || s.State == StateFailed) && s.UpdatedAt.Before(cutoff) {
			delete(t.statuses, id)
		}
	}
}
