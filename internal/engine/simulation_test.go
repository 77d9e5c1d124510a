package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evka/playforge/internal/gamespec"
)

func simulationSection() gamespec.Section {
	return gamespec.Section{
		ID:    "farm",
		Title: "Farm",
		Type:  gamespec.SectionSimulation,
		Simulation: &gamespec.SimulationContent{
			Type: "simulation",
			InitialState: gamespec.SimulationState{
				Turn:      0,
				Resources: map[string]float64{"water": 50, "crops": 20},
			},
			Resources: []gamespec.SimResource{
				{ID: "water", Name: "Water", InitialValue: 50, MinValue: 0, MaxValue: 100},
				{ID: "crops", Name: "Crops", InitialValue: 20, MinValue: 0, MaxValue: 100},
			},
			Actions: []gamespec.SimAction{
				{
					ID: "irrigate", Name: "Irrigate",
					Cost:    map[string]float64{"water": 20},
					Effects: map[string]float64{"crops": 30},
				},
				{
					ID: "harvest", Name: "Harvest",
					Cost:     map[string]float64{"crops": 10},
					Effects:  map[string]float64{"water": 5},
					Cooldown: 2,
				},
			},
			Events: []gamespec.SimEvent{},
			Objectives: []gamespec.SimObjective{
				{ID: "grow", Type: "reach-value", Target: "crops", Value: 60, Required: true, Points: 50},
				{ID: "endure", Type: "survive-turns", Value: 3, Required: false, Points: 20},
			},
			MaxTurns: 10,
		},
	}
}

func newSimRun(t *testing.T) (*Session, *SimulationRun) {
	t.Helper()
	spec := testSpec(simulationSection())
	s := NewSession(spec)
	s.Start()

	run, err := NewSimulationRun(s, s.CurrentSection(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	return s, run
}

func TestSimulationActionCostsAndEffects(t *testing.T) {
	_, run := newSimRun(t)

	require.NoError(t, run.Perform("irrigate"))
	assert.Equal(t, float64(30), run.Resource("water"))
	assert.Equal(t, float64(50), run.Resource("crops"))
}

// openEndedSimRun raises the win threshold so mechanics can be exercised
// without finishing the simulation.
func openEndedSimRun(t *testing.T) (*Session, *SimulationRun) {
	t.Helper()
	sec := simulationSection()
	sec.Simulation.InitialState.Resources["water"] = 100
	sec.Simulation.Objectives = []gamespec.SimObjective{
		{ID: "grow", Type: "reach-value", Target: "crops", Value: 999, Required: true, Points: 50},
	}
	spec := testSpec(sec)
	s := NewSession(spec)
	s.Start()

	run, err := NewSimulationRun(s, s.CurrentSection(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	return s, run
}

func TestSimulationRejectsUnaffordableAction(t *testing.T) {
	_, run := newSimRun(t)

	require.NoError(t, run.Perform("irrigate")) // water 50 -> 30

	// A second irrigation would leave water at 10, below the 20 cost of a third.
	require.NoError(t, run.Perform("harvest"))
	assert.Equal(t, float64(35), run.Resource("water"))

	sec := simulationSection()
	sec.Simulation.InitialState.Resources["water"] = 10
	spec := testSpec(sec)
	s := NewSession(spec)
	s.Start()
	poor, err := NewSimulationRun(s, s.CurrentSection(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.False(t, poor.CanPerform("irrigate"), "cost exceeds available water")
	assert.Error(t, poor.Perform("irrigate"))
}

func TestSimulationEffectsClampToBounds(t *testing.T) {
	_, run := openEndedSimRun(t)

	// crops 20 +30 +30 +30 would be 110; the third application clamps at 100.
	require.NoError(t, run.Perform("irrigate"))
	require.NoError(t, run.Perform("irrigate"))
	require.NoError(t, run.Perform("irrigate"))
	assert.Equal(t, float64(100), run.Resource("crops"))
}

func TestSimulationCooldown(t *testing.T) {
	_, run := newSimRun(t)

	require.NoError(t, run.Perform("harvest"))
	assert.False(t, run.CanPerform("harvest"), "on cooldown")

	require.NoError(t, run.EndTurn())
	assert.False(t, run.CanPerform("harvest"), "cooldown of 2 spans two turns")

	require.NoError(t, run.EndTurn())
	assert.True(t, run.CanPerform("harvest"))
}

func TestSimulationWinOnRequiredObjective(t *testing.T) {
	s, run := newSimRun(t)

	require.NoError(t, run.Perform("irrigate"))
	require.NoError(t, run.EndTurn()) // crops 50, not yet

	_, finished := run.Finished()
	assert.False(t, finished)

	require.NoError(t, run.Perform("irrigate")) // crops 80 >= 60
	result, finished := run.Finished()
	assert.True(t, finished)
	assert.Equal(t, SimResultWin, result)

	// Only the completed objective's points count.
	st := s.State()
	require.Len(t, st.Answers, 1)
	assert.Equal(t, 50, st.Answers[0].PointsEarned)
	assert.True(t, st.Answers[0].IsCorrect)

	require.NoError(t, run.Continue())
	assert.True(t, s.State().IsComplete)
}

func TestSimulationObjectiveCompletionIsSticky(t *testing.T) {
	_, run := newSimRun(t)

	require.NoError(t, run.EndTurn())
	require.NoError(t, run.EndTurn())
	require.NoError(t, run.EndTurn())

	assert.Contains(t, run.CompletedObjectives(), "endure")

	require.NoError(t, run.EndTurn())
	ids := run.CompletedObjectives()
	count := 0
	for _, id := range ids {
		if id == "endure" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSimulationLoseOnResourceFloor(t *testing.T) {
	sec := simulationSection()
	sec.Simulation.Events = []gamespec.SimEvent{
		{ID: "drought", Name: "Drought", Probability: 1, Effects: map[string]float64{"water": -100}},
	}
	spec := testSpec(sec)
	s := NewSession(spec)
	s.Start()

	run, err := NewSimulationRun(s, s.CurrentSection(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	require.NoError(t, run.EndTurn())
	require.NotNil(t, run.PendingEvent())
	assert.Equal(t, "drought", run.PendingEvent().ID)
	require.NoError(t, run.ResolveEvent(-1))

	result, finished := run.Finished()
	assert.True(t, finished)
	assert.Equal(t, SimResultLose, result)
	require.NotNil(t, run.LastEvent())
	assert.Equal(t, "drought", run.LastEvent().ID)

	st := s.State()
	require.Len(t, st.Answers, 1)
	assert.False(t, st.Answers[0].IsCorrect)
}

func TestSimulationOutOfTurns(t *testing.T) {
	sec := simulationSection()
	sec.Simulation.MaxTurns = 3
	spec := testSpec(sec)
	s := NewSession(spec)
	s.Start()

	run, err := NewSimulationRun(s, s.CurrentSection(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	require.NoError(t, run.EndTurn())
	require.NoError(t, run.EndTurn())
	require.NoError(t, run.EndTurn())

	// No required objective done by the deadline means a loss.
	result, finished := run.Finished()
	assert.True(t, finished)
	assert.Equal(t, SimResultLose, result)
	assert.Error(t, run.EndTurn())
}

func TestSimulationEventChoice(t *testing.T) {
	sec := simulationSection()
	sec.Simulation.Events = []gamespec.SimEvent{
		{
			ID: "storm", Name: "Storm", Probability: 1,
			Effects: map[string]float64{"crops": -30},
			Choices: []gamespec.SimEventChoice{
				{Text: "Shelter the crops", Effects: map[string]float64{"crops": -5, "water": -10}},
				{Text: "Do nothing", Effects: map[string]float64{"crops": -30}},
			},
		},
	}
	spec := testSpec(sec)
	s := NewSession(spec)
	s.Start()

	run, err := NewSimulationRun(s, s.CurrentSection(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	require.NoError(t, run.EndTurn())
	require.NotNil(t, run.PendingEvent())
	assert.Error(t, run.EndTurn(), "turn is paused until the event is answered")

	require.NoError(t, run.ResolveEvent(0))
	assert.Nil(t, run.PendingEvent())
	assert.Equal(t, float64(15), run.Resource("crops"), "chosen effects apply, not the event's")
	assert.Equal(t, float64(40), run.Resource("water"))
	assert.Equal(t, 1, run.Turn(), "resolving completes the paused turn")
}

func TestSimulationEventChoiceFallback(t *testing.T) {
	sec := simulationSection()
	sec.Simulation.Events = []gamespec.SimEvent{
		{
			ID: "storm", Name: "Storm", Probability: 1,
			Effects: map[string]float64{"crops": -30},
			Choices: []gamespec.SimEventChoice{
				{Text: "Shelter the crops", Effects: map[string]float64{"crops": -5}},
			},
		},
	}
	spec := testSpec(sec)
	s := NewSession(spec)
	s.Start()

	run, err := NewSimulationRun(s, s.CurrentSection(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Error(t, run.ResolveEvent(0), "nothing to resolve before an event fires")
	require.NoError(t, run.EndTurn())

	// An out-of-range choice falls back to the event's own effects.
	require.NoError(t, run.ResolveEvent(5))
	assert.Equal(t, float64(0), run.Resource("crops"))
}
