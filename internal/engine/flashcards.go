package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

// FlashcardsRun plays a flashcard section in either flip-reveal mode, where
// the player self-reports knowing a card, or type-answer mode, where the back
// text must be typed.
type FlashcardsRun struct {
	mu      sync.Mutex
	s       *Session
	section *gamespec.Section
	content *gamespec.FlashcardsContent

	index        int
	known        map[string]bool
	unknown      map[string]bool
	startElapsed int
	done         bool
}

func NewFlashcardsRun(s *Session, sec *gamespec.Section) (*FlashcardsRun, error) {
	if sec.Flashcards == nil || len(sec.Flashcards.Cards) == 0 {
		return nil, fmt.Errorf("section %q has no flashcards", sec.ID)
	}
	return &FlashcardsRun{
		s:            s,
		section:      sec,
		content:      sec.Flashcards,
		known:        map[string]bool{},
		unknown:      map[string]bool{},
		startElapsed: s.elapsed(),
	}, nil
}

func (r *FlashcardsRun) SectionID() string { return r.section.ID }

// Current returns the card being reviewed.
func (r *FlashcardsRun) Current() gamespec.Flashcard {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content.Cards[r.index]
}

// Reviewed reports how many cards have been marked.
func (r *FlashcardsRun) Reviewed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.known) + len(r.unknown)
}

// MarkKnown records the current card as known, scoring full points.
func (r *FlashcardsRun) MarkKnown() error {
	return r.mark(true)
}

// MarkUnknown records the current card as not known, scoring nothing.
func (r *FlashcardsRun) MarkUnknown() error {
	return r.mark(false)
}

func (r *FlashcardsRun) mark(known bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return fmt.Errorf("flashcards already complete")
	}
	if r.content.TestMode == "type-answer" {
		return fmt.Errorf("section requires a typed answer")
	}
	card := r.content.Cards[r.index]

	answer := "unknown"
	points := 0
	if known {
		answer = "known"
		points = r.s.Spec().Scoring.PointsPerCorrect
		r.known[card.ID] = true
	} else {
		r.unknown[card.ID] = true
	}

	timeSpent := r.s.elapsed() - r.startElapsed
	r.startElapsed = r.s.elapsed()
	r.s.RecordAnswer(r.section.ID, card.ID, answer, known, points, timeSpent)

	r.advance()
	return nil
}

// SubmitTyped answers the current card in type-answer mode; correctness is a
// case-insensitive comparison with the back text.
func (r *FlashcardsRun) SubmitTyped(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return fmt.Errorf("flashcards already complete")
	}
	if r.content.TestMode != "type-answer" {
		return fmt.Errorf("section is not in type-answer mode")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty answer")
	}
	card := r.content.Cards[r.index]
	correct := strings.EqualFold(text, strings.TrimSpace(card.Back.Text))

	points := 0
	if correct {
		points = r.s.Spec().Scoring.PointsPerCorrect
		r.known[card.ID] = true
	} else {
		r.unknown[card.ID] = true
	}

	timeSpent := r.s.elapsed() - r.startElapsed
	r.startElapsed = r.s.elapsed()
	r.s.RecordAnswer(r.section.ID, card.ID, text, correct, points, timeSpent)

	r.advance()
	return nil
}

func (r *FlashcardsRun) advance() {
	if r.index < len(r.content.Cards)-1 {
		r.index++
		return
	}
	if len(r.known)+len(r.unknown) >= len(r.content.Cards) {
		r.done = true
		r.s.CompleteSection(r.section.ID)
	}
}
