package engine

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

type SimResult string

const (
	SimResultWin  SimResult = "win"
	SimResultLose SimResult = "lose"
)

// SimulationRun plays a turn-based resource management section. Actions cost
// and yield resources within per-resource bounds, random events fire between
// turns, and objectives decide the outcome.
type SimulationRun struct {
	mu      sync.Mutex
	s       *Session
	section *gamespec.Section
	content *gamespec.SimulationContent
	rng     *rand.Rand

	turn         int
	resources    map[string]float64
	unlocked     map[string]bool
	completed    []string
	cooldowns    map[string]int
	lastEvent    *gamespec.SimEvent
	pendingEvent *gamespec.SimEvent
	result       SimResult
	finished     bool
	done         bool
	startElapsed int
}

func NewSimulationRun(s *Session, sec *gamespec.Section, rng *rand.Rand) (*SimulationRun, error) {
	if sec.Simulation == nil {
		return nil, fmt.Errorf("section %q has no simulation content", sec.ID)
	}
	content := sec.Simulation
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	resources := make(map[string]float64, len(content.Resources))
	for _, res := range content.Resources {
		resources[res.ID] = res.InitialValue
	}
	for id, v := range content.InitialState.Resources {
		resources[id] = v
	}
	unlocked := make(map[string]bool, len(content.InitialState.UnlockedActions))
	for _, id := range content.InitialState.UnlockedActions {
		unlocked[id] = true
	}

	r := &SimulationRun{
		s:            s,
		section:      sec,
		content:      content,
		rng:          rng,
		turn:         content.InitialState.Turn,
		resources:    resources,
		unlocked:     unlocked,
		completed:    append([]string{}, content.InitialState.CompletedObjectives...),
		cooldowns:    map[string]int{},
		startElapsed: s.elapsed(),
	}
	return r, nil
}

func (r *SimulationRun) SectionID() string { return r.section.ID }

// Turn returns the current turn number.
func (r *SimulationRun) Turn() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.turn
}

// Resource returns the current value of a resource.
func (r *SimulationRun) Resource(id string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resources[id]
}

// LastEvent returns the event that fired most recently, if any.
func (r *SimulationRun) LastEvent() *gamespec.SimEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastEvent
}

// Finished reports whether the simulation has concluded and with what result.
func (r *SimulationRun) Finished() (SimResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.finished
}

// CompletedObjectives returns ids of objectives completed so far.
func (r *SimulationRun) CompletedObjectives() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.completed...)
}

// CanPerform reports whether an action is currently allowed: off cooldown,
// unlocked, and affordable.
func (r *SimulationRun) CanPerform(actionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	action := r.actionByID(actionID)
	return action != nil && r.canPerform(action)
}

func (r *SimulationRun) canPerform(action *gamespec.SimAction) bool {
	if r.finished {
		return false
	}
	if r.cooldowns[action.ID] > 0 {
		return false
	}
	if action.UnlockCondition != "" && !r.unlocked[action.ID] {
		return false
	}
	for resourceID, cost := range action.Cost {
		if r.resources[resourceID] < cost {
			return false
		}
	}
	return true
}

// Perform executes an action: costs are deducted, effects applied within each
// resource's bounds, and any cooldown armed.
func (r *SimulationRun) Perform(actionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	action := r.actionByID(actionID)
	if action == nil {
		return fmt.Errorf("unknown action: %s", actionID)
	}
	if !r.canPerform(action) {
		return fmt.Errorf("action %s cannot be performed", actionID)
	}

	for resourceID, cost := range action.Cost {
		r.resources[resourceID] -= cost
	}
	r.applyEffects(action.Effects)

	if action.Cooldown > 0 {
		r.cooldowns[action.ID] = action.Cooldown
	}

	r.evaluate()
	return nil
}

// EndTurn advances the simulation one turn: cooldowns tick down and at most
// one eligible random event fires. A fired event pauses the turn until
// ResolveEvent applies the player's response; otherwise the turn advances and
// objectives are re-checked immediately.
func (r *SimulationRun) EndTurn() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return fmt.Errorf("simulation already finished")
	}
	if r.pendingEvent != nil {
		return fmt.Errorf("event %s awaits a response", r.pendingEvent.ID)
	}

	for id, cd := range r.cooldowns {
		if cd > 1 {
			r.cooldowns[id] = cd - 1
		} else {
			delete(r.cooldowns, id)
		}
	}

	r.lastEvent = nil
	var eligible []gamespec.SimEvent
	for _, ev := range r.content.Events {
		if r.rng.Float64() < ev.Probability {
			eligible = append(eligible, ev)
		}
	}
	if len(eligible) > 0 {
		ev := eligible[r.rng.Intn(len(eligible))]
		r.lastEvent = &ev
		r.pendingEvent = &ev
		return nil
	}

	r.turn++
	r.checkObjectives()
	r.evaluate()
	return nil
}

// PendingEvent returns the fired event awaiting a player response, if any.
func (r *SimulationRun) PendingEvent() *gamespec.SimEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pendingEvent
}

// ResolveEvent answers the pending event. The chosen option's effects apply;
// an out-of-range index, or an event without choices, falls back to the
// event's own effects. Resolving completes the paused turn.
func (r *SimulationRun) ResolveEvent(choiceIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return fmt.Errorf("simulation already finished")
	}
	if r.pendingEvent == nil {
		return fmt.Errorf("no event to resolve")
	}

	effects := r.pendingEvent.Effects
	if choiceIndex >= 0 && choiceIndex < len(r.pendingEvent.Choices) {
		if choice := r.pendingEvent.Choices[choiceIndex]; choice.Effects != nil {
			effects = choice.Effects
		}
	}
	r.applyEffects(effects)
	r.pendingEvent = nil

	r.turn++
	r.checkObjectives()
	r.evaluate()
	return nil
}

func (r *SimulationRun) applyEffects(effects map[string]float64) {
	for resourceID, delta := range effects {
		res := r.resourceByID(resourceID)
		min, max := 0.0, 100.0
		if res != nil {
			min, max = res.MinValue, res.MaxValue
		}
		v := r.resources[resourceID] + delta
		if v < min {
			v = min
		}
		if v > max {
			v = max
		}
		r.resources[resourceID] = v
	}
}

// checkObjectives marks newly met objectives complete. Completion is sticky.
func (r *SimulationRun) checkObjectives() {
	for _, obj := range r.content.Objectives {
		if contains(r.completed, obj.ID) {
			continue
		}
		met := false
		switch obj.Type {
		case "reach-value":
			met = r.resources[obj.Target] >= obj.Value
		case "survive-turns":
			met = float64(r.turn) >= obj.Value
		}
		if met {
			r.completed = append(r.completed, obj.ID)
		}
	}
}

// evaluate checks the win/lose conditions:
// all required objectives done wins; running out of turns wins only if at
// least one required objective was completed; any resource at its floor loses.
func (r *SimulationRun) evaluate() {
	if r.finished {
		return
	}

	var required, requiredDone int
	for _, obj := range r.content.Objectives {
		if !obj.Required {
			continue
		}
		required++
		if contains(r.completed, obj.ID) {
			requiredDone++
		}
	}

	if required > 0 && requiredDone == required {
		r.end(SimResultWin)
		return
	}
	if r.turn >= r.content.MaxTurns {
		if requiredDone > 0 {
			r.end(SimResultWin)
		} else {
			r.end(SimResultLose)
		}
		return
	}
	for _, res := range r.content.Resources {
		if r.resources[res.ID] <= res.MinValue {
			r.end(SimResultLose)
			return
		}
	}
}

func (r *SimulationRun) end(result SimResult) {
	r.finished = true
	r.result = result

	points := 0
	for _, obj := range r.content.Objectives {
		if contains(r.completed, obj.ID) {
			points += obj.Points
		}
	}

	timeSpent := r.s.elapsed() - r.startElapsed
	answer := map[string]any{
		"result":              string(result),
		"turn":                r.turn,
		"completedObjectives": append([]string{}, r.completed...),
	}
	r.s.RecordAnswer(r.section.ID, r.section.ID, answer, result == SimResultWin, points, timeSpent)
}

// Continue completes the section after the outcome has been shown.
func (r *SimulationRun) Continue() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.finished {
		return fmt.Errorf("simulation not finished yet")
	}
	if r.done {
		return nil
	}
	r.done = true
	r.s.CompleteSection(r.section.ID)
	return nil
}

func (r *SimulationRun) actionByID(id string) *gamespec.SimAction {
	for i := range r.content.Actions {
		if r.content.Actions[i].ID == id {
			return &r.content.Actions[i]
		}
	}
	return nil
}

func (r *SimulationRun) resourceByID(id string) *gamespec.SimResource {
	for i := range r.content.Resources {
		if r.content.Resources[i].ID == id {
			return &r.content.Resources[i]
		}
	}
	return nil
}
