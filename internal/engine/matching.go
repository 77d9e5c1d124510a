package engine

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

// MatchingRun plays a matching section: two shuffled columns built from the
// same pair list, where picking the same pair id on both sides is a match.
type MatchingRun struct {
	mu      sync.Mutex
	s       *Session
	section *gamespec.Section
	content *gamespec.MatchingContent

	left    []gamespec.MatchPair
	right   []gamespec.MatchPair
	matched map[string]bool

	remaining    int
	timed        bool
	startElapsed int
	done         bool
}

func NewMatchingRun(s *Session, sec *gamespec.Section, rng *rand.Rand) (*MatchingRun, error) {
	if sec.Matching == nil || len(sec.Matching.Pairs) == 0 {
		return nil, fmt.Errorf("section %q has no pairs to match", sec.ID)
	}
	content := sec.Matching

	left := append([]gamespec.MatchPair{}, content.Pairs...)
	right := append([]gamespec.MatchPair{}, content.Pairs...)
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(left), func(i, j int) { left[i], left[j] = left[j], left[i] })
	shuffle(len(right), func(i, j int) { right[i], right[j] = right[j], right[i] })

	return &MatchingRun{
		s:            s,
		section:      sec,
		content:      content,
		left:         left,
		right:        right,
		matched:      map[string]bool{},
		timed:        content.TimeLimit > 0,
		remaining:    content.TimeLimit,
		startElapsed: s.elapsed(),
	}, nil
}

func (r *MatchingRun) SectionID() string { return r.section.ID }

// Columns returns the shuffled left and right columns.
func (r *MatchingRun) Columns() (left, right []gamespec.MatchPair) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]gamespec.MatchPair{}, r.left...), append([]gamespec.MatchPair{}, r.right...)
}

// Matched reports whether a pair has been matched.
func (r *MatchingRun) Matched(pairID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matched[pairID]
}

// SelectPair attempts to match a left entry with a right entry. It reports
// whether they belong to the same pair; a wrong pick scores nothing and
// clears the selection.
func (r *MatchingRun) SelectPair(leftID, rightID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return false, fmt.Errorf("matching already complete")
	}
	if r.matched[leftID] {
		return false, fmt.Errorf("pair %s already matched", leftID)
	}
	if r.pairByID(leftID) == nil || r.pairByID(rightID) == nil {
		return false, fmt.Errorf("unknown pair id")
	}

	correct := leftID == rightID
	points := 0
	if correct {
		points = r.s.Spec().Scoring.PointsPerCorrect
		r.matched[leftID] = true
	}

	timeSpent := r.s.elapsed() - r.startElapsed
	answer := map[string]string{"left": leftID, "right": rightID}
	r.s.RecordAnswer(r.section.ID, leftID, answer, correct, points, timeSpent)

	if correct && len(r.matched) >= len(r.content.Pairs) {
		r.done = true
		r.s.CompleteSection(r.section.ID)
	}
	return correct, nil
}

// Tick advances the optional section countdown; at zero the section completes
// with whatever was matched.
func (r *MatchingRun) Tick(epoch uint64) {
	if !r.s.playing(epoch) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done || !r.timed {
		return
	}
	r.remaining--
	if r.remaining <= 0 {
		r.remaining = 0
		r.done = true
		r.s.CompleteSection(r.section.ID)
	}
}

func (r *MatchingRun) pairByID(id string) *gamespec.MatchPair {
	for i := range r.content.Pairs {
		if r.content.Pairs[i].ID == id {
			return &r.content.Pairs[i]
		}
	}
	return nil
}
