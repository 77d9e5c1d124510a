package jobs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerLifecycle(t *testing.T) {
	tr := NewTracker(time.Hour)
	tr.Create("j1")

	s, ok := tr.Get("j1")
	require.True(t, ok)
	assert.Equal(t, StatePending, s.State)

	tr.MarkRunning("j1")
	s, _ = tr.Get("j1")
	assert.Equal(t, StateRunning, s.State)

	tr.MarkDone("j1", "game-42")
	s, _ = tr.Get("j1")
	assert.Equal(t, StateDone, s.State)
	assert.Equal(t, "game-42", s.GameID)
}

func TestTrackerFailure(t *testing.T) {
	tr := NewTracker(time.Hour)
	tr.Create("j1")
	tr.MarkFailed("j1", errors.New("model unavailable"))

	s, ok := tr.Get("j1")
	require.True(t, ok)
	assert.Equal(t, StateFailed, s.State)
	assert.Equal(t, "model unavailable", s.Error)
}

func TestTrackerIgnoresUnknownJobs(t *testing.T) {
	tr := NewTracker(time.Hour)
	tr.MarkDone("ghost", "game-1")

	_, ok := tr.Get("ghost")
	assert.False(t, ok)
}

func TestTrackerPrunesFinishedJobs(t *testing.T) {
	tr := NewTracker(time.Minute)
	current := time.Now()
	tr.now = func() time.Time { return current }

	tr.Create("old-done")
	tr.MarkDone("old-done", "game-1")
	tr.Create("old-pending")

	// Jump past the retention window; the next Create prunes.
	current = current.Add(2 * time.Minute)
	tr.Create("fresh")

	_, ok := tr.Get("old-done")
	assert.False(t, ok, "finished jobs past retention are dropped")
	_, ok = tr.Get("old-pending")
	assert.True(t, ok, "unfinished jobs are kept")
	_, ok = tr.Get("fresh")
	assert.True(t, ok)
}
