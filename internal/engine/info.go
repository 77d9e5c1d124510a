package engine

import (
	"fmt"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

// infoReadPoints is the flat award for reading an info section.
const infoReadPoints = 10

// InfoRun plays a non-interactive content section: acknowledging it awards a
// small flat score and completes the section.
type InfoRun struct {
	mu      sync.Mutex
	s       *Session
	section *gamespec.Section

	startElapsed int
	done         bool
}

func NewInfoRun(s *Session, sec *gamespec.Section) (*InfoRun, error) {
	if sec.Info == nil {
		return nil, fmt.Errorf("section %q has no info content", sec.ID)
	}
	return &InfoRun{s: s, section: sec, startElapsed: s.elapsed()}, nil
}

func (r *InfoRun) SectionID() string { return r.section.ID }

// Blocks returns the content to display.
func (r *InfoRun) Blocks() []gamespec.InfoBlock {
	return r.section.Info.Content
}

// Acknowledge marks the section as read.
func (r *InfoRun) Acknowledge() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return fmt.Errorf("info already acknowledged")
	}
	r.done = true

	timeSpent := r.s.elapsed() - r.startElapsed
	r.s.RecordAnswer(r.section.ID, r.section.ID, "read", true, infoReadPoints, timeSpent)
	r.s.CompleteSection(r.section.ID)
	return nil
}
