package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

// QuizRun plays a quiz section: one question at a time, with optional
// per-question countdowns that force an empty submission on expiry.
type QuizRun struct {
	mu      sync.Mutex
	s       *Session
	section *gamespec.Section
	content *gamespec.QuizContent

	index        int
	answered     bool
	remaining    int
	timed        bool
	startElapsed int
	done         bool
}

func NewQuizRun(s *Session, sec *gamespec.Section) (*QuizRun, error) {
	if sec.Quiz == nil || len(sec.Quiz.Questions) == 0 {
		return nil, fmt.Errorf("section %q has no quiz questions", sec.ID)
	}
	r := &QuizRun{s: s, section: sec, content: sec.Quiz}
	r.enterQuestion()
	return r, nil
}

func (r *QuizRun) SectionID() string { return r.section.ID }

func (r *QuizRun) enterQuestion() {
	q := r.content.Questions[r.index]
	limit := q.TimeLimit
	if limit == 0 {
		limit = r.s.Spec().Config.QuestionTimeLimit
	}
	r.timed = limit > 0
	r.remaining = limit
	r.answered = false
	r.startElapsed = r.s.elapsed()
}

// Current returns the question awaiting an answer.
func (r *QuizRun) Current() gamespec.QuizQuestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content.Questions[r.index]
}

// QuestionTimeRemaining reports the per-question countdown; ok is false for
// untimed questions.
func (r *QuizRun) QuestionTimeRemaining() (seconds int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.timed
}

// SubmitChoice answers a single-choice or true-false question with an option
// index.
func (r *QuizRun) SubmitChoice(optionIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submit(optionIndex)
}

// SubmitMultiChoice answers a multiple-choice question with the selected
// option indexes.
func (r *QuizRun) SubmitMultiChoice(optionIndexes []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submit(optionIndexes)
}

// SubmitText answers a text-input question.
func (r *QuizRun) SubmitText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty answer")
	}
	return r.submit(text)
}

func (r *QuizRun) submit(answer any) error {
	if r.done {
		return fmt.Errorf("quiz already complete")
	}
	if r.answered {
		return fmt.Errorf("question already answered")
	}
	q := r.content.Questions[r.index]
	correct := answer != nil && checkQuizAnswer(q, answer)
	points := 0
	if correct {
		points = q.Points
	}
	r.answered = true

	timeSpent := r.s.elapsed() - r.startElapsed
	r.s.RecordAnswer(r.section.ID, q.ID, answer, correct, points, timeSpent)
	return nil
}

// Next advances past an answered question, completing the section after the
// last one.
func (r *QuizRun) Next() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.answered {
		return fmt.Errorf("question not answered yet")
	}
	if r.index < len(r.content.Questions)-1 {
		r.index++
		r.enterQuestion()
		return nil
	}
	r.done = true
	r.s.CompleteSection(r.section.ID)
	return nil
}

// Tick advances the per-question countdown. An expired timer submits an empty
// answer, which always scores as incorrect.
func (r *QuizRun) Tick(epoch uint64) {
	if !r.s.playing(epoch) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done || r.answered || !r.timed {
		return
	}
	r.remaining--
	if r.remaining <= 0 {
		r.remaining = 0
		_ = r.submit(nil)
	}
}

func checkQuizAnswer(q gamespec.QuizQuestion, answer any) bool {
	switch q.QuestionType {
	case "text-input":
		s, ok := answer.(string)
		if !ok || q.CorrectAnswer.Text == nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(*q.CorrectAnswer.Text))
	case "multiple-choice":
		got, ok := answer.([]int)
		if !ok || q.CorrectAnswer.Indexes == nil {
			return false
		}
		return equalIndexSets(got, q.CorrectAnswer.Indexes)
	default: // single-choice, true-false
		idx, ok := answer.(int)
		if !ok || q.CorrectAnswer.Index == nil {
			return false
		}
		return idx == *q.CorrectAnswer.Index
	}
}

func equalIndexSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]int{}, a...)
	bs := append([]int{}, b...)
	sort.Ints(as)
	sort.Ints(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
