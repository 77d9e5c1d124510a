package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evka/playforge/internal/gamespec"
)

func flashcardsSection(mode string, cards ...gamespec.Flashcard) gamespec.Section {
	return gamespec.Section{
		ID:    "cards",
		Title: "Cards",
		Type:  gamespec.SectionFlashcards,
		Flashcards: &gamespec.FlashcardsContent{
			Type:     "flashcards",
			Cards:    cards,
			TestMode: mode,
		},
	}
}

func TestFlashcardsFlipReveal(t *testing.T) {
	spec := testSpec(flashcardsSection("flip-reveal",
		gamespec.Flashcard{ID: "c1", Front: gamespec.CardFace{Text: "Hola"}, Back: gamespec.CardFace{Text: "Hello"}},
		gamespec.Flashcard{ID: "c2", Front: gamespec.CardFace{Text: "Adiós"}, Back: gamespec.CardFace{Text: "Goodbye"}},
	))
	s := NewSession(spec)
	s.Start()

	run, err := NewFlashcardsRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.MarkKnown())
	require.NoError(t, run.MarkUnknown())

	st := s.State()
	require.Len(t, st.Answers, 2)
	assert.Equal(t, 10, st.Score, "known card pays pointsPerCorrect, unknown pays nothing")
	assert.True(t, st.Answers[0].IsCorrect)
	assert.False(t, st.Answers[1].IsCorrect)
	assert.Equal(t, []string{"cards"}, st.CompletedSections)
	assert.True(t, st.IsComplete)
}

func TestFlashcardsTypeAnswer(t *testing.T) {
	spec := testSpec(flashcardsSection("type-answer",
		gamespec.Flashcard{ID: "c1", Front: gamespec.CardFace{Text: "Hola"}, Back: gamespec.CardFace{Text: "Hello"}},
		gamespec.Flashcard{ID: "c2", Front: gamespec.CardFace{Text: "Adiós"}, Back: gamespec.CardFace{Text: "Goodbye"}},
	))
	s := NewSession(spec)
	s.Start()

	run, err := NewFlashcardsRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.SubmitTyped("  HELLO "))
	require.NoError(t, run.SubmitTyped("wrong"))

	st := s.State()
	require.Len(t, st.Answers, 2)
	assert.True(t, st.Answers[0].IsCorrect, "comparison is case-insensitive and trimmed")
	assert.False(t, st.Answers[1].IsCorrect)
	assert.Equal(t, 10, st.Score)
	assert.True(t, st.IsComplete)
}

func TestFlashcardsRejectAfterComplete(t *testing.T) {
	spec := testSpec(flashcardsSection("flip-reveal",
		gamespec.Flashcard{ID: "c1", Front: gamespec.CardFace{Text: "A"}, Back: gamespec.CardFace{Text: "B"}},
	))
	s := NewSession(spec)
	s.Start()

	run, err := NewFlashcardsRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.MarkKnown())
	assert.Error(t, run.MarkKnown())
	assert.Error(t, run.SubmitTyped("B"))
}

func TestFlashcardsModeGating(t *testing.T) {
	spec := testSpec(flashcardsSection("type-answer",
		gamespec.Flashcard{ID: "c1", Front: gamespec.CardFace{Text: "Hola"}, Back: gamespec.CardFace{Text: "Hello"}},
	))
	s := NewSession(spec)
	s.Start()

	run, err := NewFlashcardsRun(s, s.CurrentSection())
	require.NoError(t, err)

	assert.Error(t, run.MarkKnown(), "self-report must not complete a type-answer section")
	assert.Error(t, run.MarkUnknown())
	assert.Empty(t, s.State().CompletedSections)

	require.NoError(t, run.SubmitTyped("hello"))
	assert.True(t, s.State().IsComplete)
}

func TestFlashcardsTypedRejectedInFlipReveal(t *testing.T) {
	spec := testSpec(flashcardsSection("flip-reveal",
		gamespec.Flashcard{ID: "c1", Front: gamespec.CardFace{Text: "A"}, Back: gamespec.CardFace{Text: "B"}},
	))
	s := NewSession(spec)
	s.Start()

	run, err := NewFlashcardsRun(s, s.CurrentSection())
	require.NoError(t, err)

	assert.Error(t, run.SubmitTyped("B"))
	require.NoError(t, run.MarkKnown())
}
