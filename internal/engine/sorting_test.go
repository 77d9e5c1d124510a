package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evka/playforge/internal/gamespec"
)

func sortingSection() gamespec.Section {
	return gamespec.Section{
		ID:    "sort",
		Title: "Sort",
		Type:  gamespec.SectionSorting,
		Sorting: &gamespec.SortingContent{
			Type: "sorting",
			Items: []gamespec.SortItem{
				{ID: "i1", Text: "Dog", CorrectCategory: "mammal"},
				{ID: "i2", Text: "Eagle", CorrectCategory: "bird"},
				{ID: "i3", Text: "Whale", CorrectCategory: "mammal"},
				{ID: "i4", Text: "Penguin", CorrectCategory: "bird"},
			},
			Categories: []gamespec.SortCategory{
				{ID: "mammal", Name: "Mammals"},
				{ID: "bird", Name: "Birds"},
			},
			Instructions: "Sort the animals.",
		},
	}
}

func TestSortingPartialCredit(t *testing.T) {
	spec := testSpec(sortingSection())
	s := NewSession(spec)
	s.Start()

	run, err := NewSortingRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.Place("i1", "mammal"))
	require.NoError(t, run.Place("i2", "bird"))
	require.NoError(t, run.Place("i3", "bird")) // wrong
	require.NoError(t, run.Place("i4", "bird"))
	assert.True(t, run.AllPlaced())

	correct, err := run.Submit()
	require.NoError(t, err)
	assert.Equal(t, 3, correct)

	// floor(3/4 * 10 * 4) = 30
	st := s.State()
	require.Len(t, st.Answers, 1)
	assert.Equal(t, 30, st.Score)
	assert.False(t, st.Answers[0].IsCorrect, "partial placement is not a full correct")

	require.NoError(t, run.Continue())
	assert.True(t, s.State().IsComplete)
}

func TestSortingAllCorrect(t *testing.T) {
	spec := testSpec(sortingSection())
	s := NewSession(spec)
	s.Start()

	run, err := NewSortingRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.Place("i1", "mammal"))
	require.NoError(t, run.Place("i2", "bird"))
	require.NoError(t, run.Place("i3", "mammal"))
	require.NoError(t, run.Place("i4", "bird"))

	correct, err := run.Submit()
	require.NoError(t, err)
	assert.Equal(t, 4, correct)

	st := s.State()
	assert.Equal(t, 40, st.Score)
	assert.True(t, st.Answers[0].IsCorrect)
}

func TestSortingSubmitBlockedUntilAllPlaced(t *testing.T) {
	spec := testSpec(sortingSection())
	s := NewSession(spec)
	s.Start()

	run, err := NewSortingRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.Place("i1", "mammal"))
	_, err = run.Submit()
	assert.Error(t, err)

	assert.Error(t, run.Continue(), "cannot continue before submitting")
}

func TestSortingReplaceAndRemove(t *testing.T) {
	spec := testSpec(sortingSection())
	s := NewSession(spec)
	s.Start()

	run, err := NewSortingRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.Place("i1", "bird"))
	require.NoError(t, run.Place("i1", "mammal")) // replace
	run.Remove("i1")
	assert.False(t, run.AllPlaced())

	assert.Error(t, run.Place("i1", "nope"))
	assert.Error(t, run.Place("nope", "bird"))
}
