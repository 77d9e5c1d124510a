package engine

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

// ErrUnsupportedSection is returned when a spec contains a section type the
// runtime cannot play.
type ErrUnsupportedSection struct {
	Type gamespec.SectionType
}

func (e ErrUnsupportedSection) Error() string {
	return fmt.Sprintf("unsupported section type: %s", e.Type)
}

// Session is the runtime interpreter for one play-through of a game spec.
// All methods are safe for concurrent use; stale timer ticks are rejected by
// the epoch counter, which advances on restart.
type Session struct {
	mu   sync.Mutex
	spec *gamespec.GameSpec

	phase         Phase
	state         State
	epoch         uint64
	timeRemaining int // seconds; meaningful only when timed
	timed         bool
	livesLimited  bool

	// OnComplete, when set, receives the final state the moment the game
	// ends. Called with the session lock held; callbacks must not call back
	// into the session.
	OnComplete func(State)
}

func NewSession(spec *gamespec.GameSpec) *Session {
	s := &Session{spec: spec}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.phase = PhaseIntro
	s.state = s.initialState()
	s.timed = s.spec.Config.TimeLimit > 0
	s.timeRemaining = s.spec.Config.TimeLimit
	s.livesLimited = s.spec.Config.Lives > 0
}

func (s *Session) initialState() State {
	firstSectionID := ""
	switch {
	case len(s.spec.Progression.SectionOrder) > 0:
		firstSectionID = s.spec.Progression.SectionOrder[0]
	case s.spec.Progression.StartSection != "":
		firstSectionID = s.spec.Progression.StartSection
	case len(s.spec.Content.Sections) > 0:
		firstSectionID = s.spec.Content.Sections[0].ID
	}

	return State{
		CurrentSectionID:  firstSectionID,
		Lives:             s.spec.Config.Lives,
		Hints:             s.spec.Config.MaxHints,
		Answers:           []AnswerRecord{},
		CompletedSections: []string{},
		Variables:         map[string]any{},
		Inventory:         []string{},
	}
}

// Spec returns the spec this session plays.
func (s *Session) Spec() *gamespec.GameSpec { return s.spec }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Epoch identifies the current run. Ticks carrying an older epoch are ignored.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// State returns a deep copy of the current play state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

func (s *Session) copyState() State {
	st := s.state
	st.Answers = append([]AnswerRecord{}, s.state.Answers...)
	st.CompletedSections = append([]string{}, s.state.CompletedSections...)
	st.Inventory = append([]string{}, s.state.Inventory...)
	st.Variables = make(map[string]any, len(s.state.Variables))
	for k, v := range s.state.Variables {
		st.Variables[k] = v
	}
	if s.state.FinalRating != nil {
		r := *s.state.FinalRating
		st.FinalRating = &r
	}
	return st
}

// TimeRemaining reports the global countdown. ok is false for untimed games.
func (s *Session) TimeRemaining() (seconds int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRemaining, s.timed
}

// Start moves the session from intro to playing. It is a no-op in any other
// phase.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseIntro {
		s.phase = PhasePlaying
	}
}

// Restart discards all progress and returns to the intro phase. The epoch
// advances so ticks from the previous run are dropped.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.reset()
}

// End finishes the game immediately, computing the final rating.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish()
}

func (s *Session) finish() {
	if s.phase == PhaseOutro {
		return
	}
	rating := CalculateRating(s.state.Score, s.spec.Scoring)
	s.state.IsComplete = true
	s.state.FinalRating = &rating
	s.phase = PhaseOutro
	if s.OnComplete != nil {
		s.OnComplete(s.copyState())
	}
}

// Tick advances the session clock by one second. Ticks are ignored unless the
// session is playing and the epoch matches. When a global time limit runs out
// the game ends.
func (s *Session) Tick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying || epoch != s.epoch {
		return
	}
	s.state.TimeElapsed++
	if s.timed {
		s.timeRemaining--
		if s.timeRemaining <= 0 {
			s.timeRemaining = 0
			s.finish()
		}
	}
}

// UseHint consumes one hint, reporting whether one was available.
func (s *Session) UseHint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying || s.state.Hints <= 0 {
		return false
	}
	s.state.Hints--
	return true
}

// NavigateToSection jumps to the named section, used by branching games.
func (s *Session) NavigateToSection(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spec.SectionByID(sectionID) == nil {
		return fmt.Errorf("unknown section: %s", sectionID)
	}
	s.state.CurrentSectionID = sectionID
	s.state.CurrentItemIndex = 0
	return nil
}

// UpdateVariables merges updates into session variables.
func (s *Session) UpdateVariables(updates map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range updates {
		s.state.Variables[k] = v
	}
}

// RecordAnswer applies an answer's outcome to the shared state: scoring with
// streak bonus, streak tracking and life loss. Running out of lives ends the
// game immediately.
func (s *Session) RecordAnswer(sectionID, itemID string, answer any, isCorrect bool, pointsEarned, timeSpent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return
	}

	newStreak := 0
	if isCorrect {
		newStreak = s.state.Streak + 1
	}
	streakBonus := 0
	if mult := s.spec.Scoring.StreakMultiplier; mult > 1 && newStreak >= 3 {
		streakBonus = int(float64(pointsEarned) * (mult - 1))
	}

	s.state.Streak = newStreak
	s.state.Score += pointsEarned + streakBonus
	s.state.Answers = append(s.state.Answers, AnswerRecord{
		SectionID:    sectionID,
		ItemID:       itemID,
		Answer:       answer,
		IsCorrect:    isCorrect,
		TimeSpent:    timeSpent,
		PointsEarned: pointsEarned + streakBonus,
	})

	if !isCorrect && s.livesLimited {
		s.state.Lives--
		if s.state.Lives <= 0 {
			s.finish()
		}
	}
}

// CompleteSection marks a section done and advances to the next one in the
// progression order. Completing the last section finishes the game.
func (s *Session) CompleteSection(sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return
	}

	if contains(s.state.CompletedSections, sectionID) {
		// Re-completing a section must not rewind progression.
		return
	}
	s.state.CompletedSections = append(s.state.CompletedSections, sectionID)

	order := s.spec.Progression.SectionOrder
	if len(order) == 0 {
		for _, sec := range s.spec.Content.Sections {
			order = append(order, sec.ID)
		}
	}

	next := ""
	for i, id := range order {
		if id == sectionID && i+1 < len(order) {
			next = order[i+1]
			break
		}
	}

	if next == "" {
		s.finish()
		return
	}
	s.state.CurrentSectionID = next
	s.state.CurrentItemIndex = 0
}

// CurrentSection returns the section being played, or nil when the current id
// resolves to nothing.
func (s *Session) CurrentSection() *gamespec.Section {
	s.mu.Lock()
	id := s.state.CurrentSectionID
	s.mu.Unlock()
	return s.spec.SectionByID(id)
}

// CurrentRunner builds the runner for the section being played. rng is used
// by section mechanics that need randomness; pass nil for the default source.
func (s *Session) CurrentRunner(rng *rand.Rand) (Runner, error) {
	sec := s.CurrentSection()
	if sec == nil {
		return nil, fmt.Errorf("no current section")
	}
	return NewRunner(s, sec, rng)
}

// Runner drives one section's mechanics against a session.
type Runner interface {
	SectionID() string
}

// NewRunner dispatches on section type.
func NewRunner(s *Session, sec *gamespec.Section, rng *rand.Rand) (Runner, error) {
	switch sec.Type {
	case gamespec.SectionQuiz:
		return NewQuizRun(s, sec)
	case gamespec.SectionFlashcards:
		return NewFlashcardsRun(s, sec)
	case gamespec.SectionMatching:
		return NewMatchingRun(s, sec, rng)
	case gamespec.SectionSorting:
		return NewSortingRun(s, sec)
	case gamespec.SectionNarrative:
		return NewNarrativeRun(s, sec)
	case gamespec.SectionSimulation:
		return NewSimulationRun(s, sec, rng)
	case gamespec.SectionChallenge:
		return NewChallengeRun(s, sec)
	case gamespec.SectionInfo:
		return NewInfoRun(s, sec)
	default:
		return nil, ErrUnsupportedSection{Type: sec.Type}
	}
}

func (s *Session) elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TimeElapsed
}

func (s *Session) playing(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhasePlaying && epoch == s.epoch
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
