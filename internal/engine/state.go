// Package engine interprets a game spec as a playable session. A Session owns
// the shared play state (score, lives, hints, streak, progression) and section
// runners drive the per-section mechanics against it.
package engine

import "github.com/evka/playforge/internal/gamespec"

type Phase string

const (
	PhaseIntro   Phase = "intro"
	PhasePlaying Phase = "playing"
	PhaseOutro   Phase = "outro"
)

// State is a snapshot of a play session.
type State struct {
	CurrentSectionID  string                 `json:"currentSectionId"`
	CurrentItemIndex  int                    `json:"currentItemIndex"`
	Score             int                    `json:"score"`
	Lives             int                    `json:"lives"`
	Hints             int                    `json:"hints"`
	TimeElapsed       int                    `json:"timeElapsed"`
	Answers           []AnswerRecord         `json:"answers"`
	CompletedSections []string               `json:"completedSections"`
	Variables         map[string]any         `json:"variables"`
	Inventory         []string               `json:"inventory"`
	Streak            int                    `json:"streak"`
	IsComplete        bool                   `json:"isComplete"`
	FinalRating       *gamespec.ScoreRating  `json:"finalRating,omitempty"`
}

type AnswerRecord struct {
	SectionID    string `json:"sectionId"`
	ItemID       string `json:"itemId"`
	Answer       any    `json:"answer"`
	IsCorrect    bool   `json:"isCorrect"`
	TimeSpent    int    `json:"timeSpent"`
	PointsEarned int    `json:"pointsEarned"`
}
