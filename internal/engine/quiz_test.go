package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evka/playforge/internal/gamespec"
)

func strp(s string) *string { return &s }

func TestQuizTextInputNormalization(t *testing.T) {
	q := gamespec.QuizQuestion{
		ID:            "q1",
		QuestionType:  "text-input",
		CorrectAnswer: gamespec.Answer{Text: strp("Mitochondria")},
		Points:        10,
	}
	spec := testSpec(quizSection("s1", q))
	s := NewSession(spec)
	s.Start()

	run, err := NewQuizRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.SubmitText("  mitochondria  "))
	st := s.State()
	require.Len(t, st.Answers, 1)
	assert.True(t, st.Answers[0].IsCorrect)
	assert.Equal(t, 10, st.Score)
}

func TestQuizMultiChoiceSetEquality(t *testing.T) {
	q := gamespec.QuizQuestion{
		ID:           "q1",
		QuestionType: "multiple-choice",
		Options: []gamespec.QuizOption{
			{ID: "a", Text: "A"}, {ID: "b", Text: "B"}, {ID: "c", Text: "C"},
		},
		CorrectAnswer: gamespec.Answer{Indexes: []int{0, 2}},
		Points:        10,
	}

	tests := []struct {
		name    string
		answer  []int
		correct bool
	}{
		{"exact match", []int{0, 2}, true},
		{"order ignored", []int{2, 0}, true},
		{"missing one", []int{0}, false},
		{"extra one", []int{0, 1, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec(quizSection("s1", q))
			s := NewSession(spec)
			s.Start()

			run, err := NewQuizRun(s, s.CurrentSection())
			require.NoError(t, err)
			require.NoError(t, run.SubmitMultiChoice(tt.answer))

			st := s.State()
			require.Len(t, st.Answers, 1)
			assert.Equal(t, tt.correct, st.Answers[0].IsCorrect)
		})
	}
}

func TestQuizDoubleSubmitRejected(t *testing.T) {
	spec := testSpec(quizSection("s1", singleChoice("q1", 0, 10)))
	s := NewSession(spec)
	s.Start()

	run, err := NewQuizRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.SubmitChoice(0))
	assert.Error(t, run.SubmitChoice(0))
	assert.Equal(t, 10, s.State().Score)
}

func TestQuizNextRequiresAnswer(t *testing.T) {
	spec := testSpec(quizSection("s1", singleChoice("q1", 0, 10)))
	s := NewSession(spec)
	s.Start()

	run, err := NewQuizRun(s, s.CurrentSection())
	require.NoError(t, err)
	assert.Error(t, run.Next())
}

func TestQuizQuestionTimerForcesSubmission(t *testing.T) {
	q := singleChoice("q1", 0, 10)
	q.TimeLimit = 2
	spec := testSpec(quizSection("s1", q, singleChoice("q2", 0, 10)))

	s := NewSession(spec)
	s.Start()
	epoch := s.Epoch()

	run, err := NewQuizRun(s, s.CurrentSection())
	require.NoError(t, err)

	run.Tick(epoch)
	remaining, timed := run.QuestionTimeRemaining()
	assert.True(t, timed)
	assert.Equal(t, 1, remaining)

	run.Tick(epoch)

	// Timer expiry recorded an empty, incorrect answer.
	st := s.State()
	require.Len(t, st.Answers, 1)
	assert.False(t, st.Answers[0].IsCorrect)
	assert.Nil(t, st.Answers[0].Answer)
	assert.Equal(t, 0, st.Score)

	// Further ticks change nothing until the next question.
	run.Tick(epoch)
	assert.Len(t, s.State().Answers, 1)

	require.NoError(t, run.Next())
	require.NoError(t, run.SubmitChoice(0))
	assert.Equal(t, 10, s.State().Score)
}

func TestQuizConfigFallbackTimer(t *testing.T) {
	spec := testSpec(quizSection("s1", singleChoice("q1", 0, 10)))
	spec.Config.QuestionTimeLimit = 5

	s := NewSession(spec)
	s.Start()

	run, err := NewQuizRun(s, s.CurrentSection())
	require.NoError(t, err)

	remaining, timed := run.QuestionTimeRemaining()
	assert.True(t, timed)
	assert.Equal(t, 5, remaining)
}

func TestQuizEmptyTextRejected(t *testing.T) {
	q := gamespec.QuizQuestion{
		ID:            "q1",
		QuestionType:  "text-input",
		CorrectAnswer: gamespec.Answer{Text: strp("x")},
		Points:        10,
	}
	spec := testSpec(quizSection("s1", q))
	s := NewSession(spec)
	s.Start()

	run, err := NewQuizRun(s, s.CurrentSection())
	require.NoError(t, err)
	assert.Error(t, run.SubmitText("   "))
	assert.Empty(t, s.State().Answers)
}
