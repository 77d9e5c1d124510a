package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evka/playforge/internal/gamespec"
)

func challengeSection(timeLimit, targetScore, maxMistakes int, items ...gamespec.ChallengeItem) gamespec.Section {
	return gamespec.Section{
		ID:    "speed",
		Title: "Speed Round",
		Type:  gamespec.SectionChallenge,
		Challenge: &gamespec.ChallengeContent{
			Type:          "challenge",
			ChallengeType: "speed-round",
			Items:         items,
			TimeLimit:     timeLimit,
			TargetScore:   targetScore,
			MaxMistakes:   maxMistakes,
		},
	}
}

func challengeItem(id, answer string, points, timeBonus int) gamespec.ChallengeItem {
	return gamespec.ChallengeItem{
		ID: id, Prompt: id + "?", CorrectAnswer: answer, Points: points, TimeBonus: timeBonus,
	}
}

func TestChallengePassOnTargetScore(t *testing.T) {
	spec := testSpec(challengeSection(60, 20, 0,
		challengeItem("i1", "a", 10, 0),
		challengeItem("i2", "b", 10, 0),
	))
	s := NewSession(spec)
	s.Start()

	run, err := NewChallengeRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.Submit("A")) // case-insensitive
	require.NoError(t, run.Submit("b"))

	passed, finished := run.Finished()
	assert.True(t, finished, "last item ends the challenge")
	assert.True(t, passed)

	// The whole challenge lands as one answer record carrying its score.
	st := s.State()
	require.Len(t, st.Answers, 1)
	assert.Equal(t, 20, st.Answers[0].PointsEarned)
	assert.True(t, st.Answers[0].IsCorrect)
	assertScoreInvariant(t, st)

	require.NoError(t, run.Continue())
	assert.True(t, s.State().IsComplete)
}

func TestChallengeTimeBonus(t *testing.T) {
	spec := testSpec(challengeSection(10, 0, 0,
		challengeItem("i1", "a", 10, 5),
		challengeItem("i2", "a", 10, 5),
	))
	s := NewSession(spec)
	s.Start()
	epoch := s.Epoch()

	run, err := NewChallengeRun(s, s.CurrentSection())
	require.NoError(t, err)

	// More than half the clock remains: bonus applies.
	require.NoError(t, run.Submit("a"))
	assert.Equal(t, 15, run.Score())

	// Burn the clock below half: no bonus.
	for i := 0; i < 6; i++ {
		run.Tick(epoch)
	}
	require.NoError(t, run.Submit("a"))

	_, finished := run.Finished()
	assert.True(t, finished)
	assert.Equal(t, 25, run.Score())
}

func TestChallengeStreakBonus(t *testing.T) {
	spec := testSpec(challengeSection(60, 0, 0,
		challengeItem("i1", "a", 10, 0),
		challengeItem("i2", "a", 10, 0),
		challengeItem("i3", "a", 10, 0),
	))
	s := NewSession(spec)
	s.Start()

	run, err := NewChallengeRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.Submit("a")) // 10
	require.NoError(t, run.Submit("a")) // 10
	require.NoError(t, run.Submit("a")) // 10 + floor(10*0.2) = 12

	assert.Equal(t, 32, run.Score())
}

func TestChallengeMaxMistakesEndsEarly(t *testing.T) {
	spec := testSpec(challengeSection(60, 100, 2,
		challengeItem("i1", "a", 10, 0),
		challengeItem("i2", "a", 10, 0),
		challengeItem("i3", "a", 10, 0),
	))
	s := NewSession(spec)
	s.Start()

	run, err := NewChallengeRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.Submit("x"))
	require.NoError(t, run.Submit("x"))

	passed, finished := run.Finished()
	assert.True(t, finished)
	assert.False(t, passed)
	assert.Equal(t, 2, run.Mistakes())
	assert.Error(t, run.Submit("a"))
}

func TestChallengeTimerEndsRound(t *testing.T) {
	spec := testSpec(challengeSection(2, 5, 0,
		challengeItem("i1", "a", 10, 0),
		challengeItem("i2", "a", 10, 0),
	))
	s := NewSession(spec)
	s.Start()
	epoch := s.Epoch()

	run, err := NewChallengeRun(s, s.CurrentSection())
	require.NoError(t, err)

	require.NoError(t, run.Submit("a"))
	run.Tick(epoch)
	run.Tick(epoch)

	passed, finished := run.Finished()
	assert.True(t, finished)
	assert.True(t, passed, "score 10 meets target 5 despite the timeout")
	assert.Equal(t, 0, run.TimeRemaining())
}

func TestInfoAcknowledge(t *testing.T) {
	sec := gamespec.Section{
		ID:    "intro-facts",
		Title: "Facts",
		Type:  gamespec.SectionInfo,
		Info: &gamespec.InfoContent{
			Type:  "info",
			Title: "Facts",
			Content: []gamespec.InfoBlock{
				{Type: "text", Content: "Cells are the unit of life."},
			},
		},
	}
	spec := testSpec(sec)
	s := NewSession(spec)
	s.Start()

	run, err := NewInfoRun(s, s.CurrentSection())
	require.NoError(t, err)
	assert.Len(t, run.Blocks(), 1)

	require.NoError(t, run.Acknowledge())
	st := s.State()
	assert.Equal(t, 10, st.Score, "reading pays a flat award")
	assert.True(t, st.IsComplete)

	assert.Error(t, run.Acknowledge())
}
