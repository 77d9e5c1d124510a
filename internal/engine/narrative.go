package engine

import (
	"fmt"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

// NarrativeRun plays a branching scene graph. Choices can be gated on session
// variables and carry effects; ending scenes award points based on the ending
// type and complete the section.
type NarrativeRun struct {
	mu      sync.Mutex
	s       *Session
	section *gamespec.Section
	content *gamespec.NarrativeContent

	sceneID      string
	startElapsed int
	done         bool
}

func NewNarrativeRun(s *Session, sec *gamespec.Section) (*NarrativeRun, error) {
	if sec.Narrative == nil || len(sec.Narrative.Scenes) == 0 {
		return nil, fmt.Errorf("section %q has no scenes", sec.ID)
	}
	content := sec.Narrative
	if sceneByID(content, content.StartScene) == nil {
		return nil, fmt.Errorf("section %q: start scene %q not found", sec.ID, content.StartScene)
	}
	r := &NarrativeRun{
		s:            s,
		section:      sec,
		content:      content,
		startElapsed: s.elapsed(),
	}
	r.enterScene(content.StartScene)
	return r, nil
}

func (r *NarrativeRun) SectionID() string { return r.section.ID }

// Current returns the active scene.
func (r *NarrativeRun) Current() gamespec.NarrativeScene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *sceneByID(r.content, r.sceneID)
}

// AvailableChoices filters the current scene's choices by their conditions
// against the session variables.
func (r *NarrativeRun) AvailableChoices() []gamespec.NarrativeChoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	scene := sceneByID(r.content, r.sceneID)
	vars := r.s.State().Variables

	out := make([]gamespec.NarrativeChoice, 0, len(scene.Choices))
	for _, c := range scene.Choices {
		if c.Condition == nil || checkCondition(*c.Condition, vars) {
			out = append(out, c)
		}
	}
	return out
}

// Choose applies a choice's effects and moves to its target scene.
func (r *NarrativeRun) Choose(choiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return fmt.Errorf("narrative already complete")
	}
	scene := sceneByID(r.content, r.sceneID)

	var choice *gamespec.NarrativeChoice
	for i := range scene.Choices {
		if scene.Choices[i].ID == choiceID {
			choice = &scene.Choices[i]
			break
		}
	}
	if choice == nil {
		return fmt.Errorf("unknown choice: %s", choiceID)
	}
	if choice.Condition != nil && !checkCondition(*choice.Condition, r.s.State().Variables) {
		return fmt.Errorf("choice %s is not available", choiceID)
	}
	if sceneByID(r.content, choice.TargetScene) == nil {
		return fmt.Errorf("choice %s targets unknown scene %s", choiceID, choice.TargetScene)
	}

	timeSpent := r.s.elapsed() - r.startElapsed
	for _, effect := range choice.Effects {
		switch effect.Type {
		case "set-variable":
			r.s.UpdateVariables(map[string]any{effect.Target: effect.Value})
		case "add-score":
			itemID := fmt.Sprintf("%s-%s", r.sceneID, choice.ID)
			r.s.RecordAnswer(r.section.ID, itemID, choice.Text, true, toInt(effect.Value), timeSpent)
		}
	}

	r.enterScene(choice.TargetScene)
	return nil
}

// Continue advances a choiceless scene. On an ending scene it records the
// ending score, success endings paying five times the per-correct points, and
// completes the section.
func (r *NarrativeRun) Continue() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return fmt.Errorf("narrative already complete")
	}
	scene := sceneByID(r.content, r.sceneID)

	if scene.IsEnding {
		timeSpent := r.s.elapsed() - r.startElapsed
		isSuccess := scene.EndingType == "success"
		points := 0
		if isSuccess {
			points = r.s.Spec().Scoring.PointsPerCorrect * 5
		}
		r.s.RecordAnswer(r.section.ID, scene.ID, scene.EndingType, isSuccess, points, timeSpent)
		r.done = true
		r.s.CompleteSection(r.section.ID)
		return nil
	}

	if scene.NextScene == "" {
		return fmt.Errorf("scene %s has no continuation", scene.ID)
	}
	if sceneByID(r.content, scene.NextScene) == nil {
		return fmt.Errorf("scene %s targets unknown scene %s", scene.ID, scene.NextScene)
	}
	r.enterScene(scene.NextScene)
	return nil
}

// enterScene moves to a scene and applies its entry actions.
func (r *NarrativeRun) enterScene(id string) {
	r.sceneID = id
	r.startElapsed = r.s.elapsed()

	scene := sceneByID(r.content, id)
	for _, action := range scene.Actions {
		switch action.Type {
		case "set-variable":
			variable, _ := action.Payload["variable"].(string)
			if variable != "" {
				r.s.UpdateVariables(map[string]any{variable: action.Payload["value"]})
			}
		case "add-score":
			r.s.RecordAnswer(r.section.ID, id, "scene-bonus", true, toInt(action.Payload["points"]), 0)
		}
	}
}

func sceneByID(content *gamespec.NarrativeContent, id string) *gamespec.NarrativeScene {
	for i := range content.Scenes {
		if content.Scenes[i].ID == id {
			return &content.Scenes[i]
		}
	}
	return nil
}

func checkCondition(cond gamespec.ChoiceCondition, vars map[string]any) bool {
	value := vars[cond.Variable]
	switch cond.Operator {
	case "==":
		return equalValues(value, cond.Value)
	case "!=":
		return !equalValues(value, cond.Value)
	case ">":
		return toFloat(value) > toFloat(cond.Value)
	case "<":
		return toFloat(value) < toFloat(cond.Value)
	case ">=":
		return toFloat(value) >= toFloat(cond.Value)
	case "<=":
		return toFloat(value) <= toFloat(cond.Value)
	default:
		return true
	}
}

// equalValues compares condition values numerically when both sides are
// numbers, otherwise by string coercion. JSON-decoded values can be slices or
// maps, which interface equality would panic on.
func equalValues(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toFloat(v any) float64 {
	f, _ := asFloat(v)
	return f
}

func toInt(v any) int {
	return int(toFloat(v))
}
