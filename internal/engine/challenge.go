package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

// ChallengeRun plays a timed challenge: rapid-fire items against a global
// countdown, with time and streak bonuses, ending on time-out, too many
// mistakes or the last item. Passing means reaching the target score.
type ChallengeRun struct {
	mu      sync.Mutex
	s       *Session
	section *gamespec.Section
	content *gamespec.ChallengeContent

	index        int
	score        int
	mistakes     int
	streak       int
	remaining    int
	finished     bool
	passed       bool
	done         bool
	startElapsed int
}

func NewChallengeRun(s *Session, sec *gamespec.Section) (*ChallengeRun, error) {
	if sec.Challenge == nil || len(sec.Challenge.Items) == 0 {
		return nil, fmt.Errorf("section %q has no challenge items", sec.ID)
	}
	return &ChallengeRun{
		s:            s,
		section:      sec,
		content:      sec.Challenge,
		remaining:    sec.Challenge.TimeLimit,
		startElapsed: s.elapsed(),
	}, nil
}

func (r *ChallengeRun) SectionID() string { return r.section.ID }

// Current returns the item awaiting an answer.
func (r *ChallengeRun) Current() gamespec.ChallengeItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content.Items[r.index]
}

// Score returns the score accumulated within this challenge.
func (r *ChallengeRun) Score() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score
}

// Mistakes returns the number of wrong answers so far.
func (r *ChallengeRun) Mistakes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mistakes
}

// TimeRemaining returns the challenge countdown.
func (r *ChallengeRun) TimeRemaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Finished reports whether the challenge is over and whether the target score
// was reached.
func (r *ChallengeRun) Finished() (passed, finished bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.passed, r.finished
}

// Submit answers the current item. Correct answers earn the item's points
// plus a time bonus when more than half the clock remains and a 20% streak
// bonus from the third consecutive correct answer.
func (r *ChallengeRun) Submit(answer string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return fmt.Errorf("challenge already finished")
	}
	item := r.content.Items[r.index]

	correct := strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(item.CorrectAnswer))
	if correct {
		timeBonus := 0
		if item.TimeBonus > 0 && r.remaining > r.content.TimeLimit/2 {
			timeBonus = item.TimeBonus
		}
		streakBonus := 0
		if r.streak >= 2 {
			streakBonus = int(float64(item.Points) * 0.2)
		}
		r.score += item.Points + timeBonus + streakBonus
		r.streak++
	} else {
		r.mistakes++
		r.streak = 0
	}

	if r.content.MaxMistakes > 0 && r.mistakes >= r.content.MaxMistakes {
		r.end()
		return nil
	}
	if r.index < len(r.content.Items)-1 {
		r.index++
		return nil
	}
	r.end()
	return nil
}

// Tick advances the challenge countdown; at zero the challenge ends.
func (r *ChallengeRun) Tick(epoch uint64) {
	if !r.s.playing(epoch) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return
	}
	r.remaining--
	if r.remaining <= 0 {
		r.remaining = 0
		r.end()
	}
}

// end records the challenge outcome as a single answer carrying the whole
// section score.
func (r *ChallengeRun) end() {
	r.finished = true
	r.passed = r.score >= r.content.TargetScore

	timeSpent := r.s.elapsed() - r.startElapsed
	answer := map[string]any{"score": r.score, "mistakes": r.mistakes}
	r.s.RecordAnswer(r.section.ID, r.section.ID, answer, r.passed, r.score, timeSpent)
}

// Continue completes the section after the outcome has been shown.
func (r *ChallengeRun) Continue() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.finished {
		return fmt.Errorf("challenge not finished yet")
	}
	if r.done {
		return nil
	}
	r.done = true
	r.s.CompleteSection(r.section.ID)
	return nil
}
