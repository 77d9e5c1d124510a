// Package gamespec defines the declarative game specification format that the
// runtime engine interprets, along with loading, validation and conversion of
// legacy content shapes.
package gamespec

import (
	"encoding/json"
	"fmt"
)

// SpecVersion is the current schema version emitted by normalization.
const SpecVersion = "1.0"

type SectionType string

const (
	SectionQuiz        SectionType = "quiz"
	SectionFlashcards  SectionType = "flashcards"
	SectionMatching    SectionType = "matching"
	SectionSorting     SectionType = "sorting"
	SectionNarrative   SectionType = "narrative"
	SectionSimulation  SectionType = "simulation"
	SectionExploration SectionType = "exploration"
	SectionChallenge   SectionType = "challenge"
	SectionInfo        SectionType = "info"
)

type GameSpec struct {
	Version     string            `json:"version"`
	Metadata    Metadata          `json:"metadata"`
	Theme       Theme             `json:"theme"`
	Config      Config            `json:"config"`
	Content     Content           `json:"content"`
	Progression ProgressionConfig `json:"progression"`
	Scoring     ScoringConfig     `json:"scoring"`
}

type Metadata struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Subject            string   `json:"subject,omitempty"`
	Topic              string   `json:"topic"`
	Difficulty         string   `json:"difficulty"`
	Complexity         string   `json:"complexity"`
	EstimatedMinutes   int      `json:"estimatedMinutes"`
	LearningObjectives []string `json:"learningObjectives,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Language           string   `json:"language"`
}

type Theme struct {
	PrimaryColor   string     `json:"primaryColor"`
	SecondaryColor string     `json:"secondaryColor"`
	Background     Background `json:"background"`
	Icon           string     `json:"icon"`
	Mood           string     `json:"mood"`
}

type Background struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Config struct {
	GameType          string   `json:"gameType,omitempty"`
	SecondaryTypes    []string `json:"secondaryTypes,omitempty"`
	TimeLimit         int      `json:"timeLimit"`
	QuestionTimeLimit int      `json:"questionTimeLimit"`
	AllowSkip         bool     `json:"allowSkip"`
	AllowBack         bool     `json:"allowBack"`
	HintsEnabled      bool     `json:"hintsEnabled"`
	MaxHints          int      `json:"maxHints"`
	Lives             int      `json:"lives"`
	ShuffleContent    bool     `json:"shuffleContent"`
	FeedbackType      string   `json:"feedbackType"`
	ShowCorrectAnswer bool     `json:"showCorrectAnswer"`
}

// isZero reports whether the config block was absent from the source JSON.
func (c Config) isZero() bool {
	return c.GameType == "" && len(c.SecondaryTypes) == 0 &&
		c.TimeLimit == 0 && c.QuestionTimeLimit == 0 &&
		!c.AllowSkip && !c.AllowBack && !c.HintsEnabled && c.MaxHints == 0 &&
		c.Lives == 0 && !c.ShuffleContent && c.FeedbackType == "" && !c.ShowCorrectAnswer
}

type Content struct {
	Intro    *IntroScreen `json:"intro,omitempty"`
	Sections []Section    `json:"sections"`
	Outro    *OutroScreen `json:"outro,omitempty"`
}

type IntroScreen struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
	Narrative    string   `json:"narrative,omitempty"`
}

type OutroScreen struct {
	CompletionMessage string   `json:"completionMessage"`
	LearningSummary   string   `json:"learningSummary"`
	NextSteps         []string `json:"nextSteps,omitempty"`
}

// Section is one playable unit of a game. Its Content field holds the typed
// payload matching Type; unknown types keep the raw JSON so a spec round-trips
// even when the runtime cannot play it.
type Section struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Type        SectionType `json:"type"`

	Quiz       *QuizContent       `json:"-"`
	Flashcards *FlashcardsContent `json:"-"`
	Matching   *MatchingContent   `json:"-"`
	Sorting    *SortingContent    `json:"-"`
	Narrative  *NarrativeContent  `json:"-"`
	Simulation *SimulationContent `json:"-"`
	Challenge  *ChallengeContent  `json:"-"`
	Info       *InfoContent       `json:"-"`

	RawContent json.RawMessage `json:"-"`
}

type sectionEnvelope struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Type        SectionType     `json:"type"`
	Content     json.RawMessage `json:"content"`
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	s.ID = env.ID
	s.Title = env.Title
	s.Description = env.Description
	s.Type = env.Type
	s.RawContent = env.Content

	if len(env.Content) == 0 {
		return nil
	}

	var target any
	switch env.Type {
	case SectionQuiz:
		s.Quiz = &QuizContent{}
		target = s.Quiz
	case SectionFlashcards:
		s.Flashcards = &FlashcardsContent{}
		target = s.Flashcards
	case SectionMatching:
		s.Matching = &MatchingContent{}
		target = s.Matching
	case SectionSorting:
		s.Sorting = &SortingContent{}
		target = s.Sorting
	case SectionNarrative:
		s.Narrative = &NarrativeContent{}
		target = s.Narrative
	case SectionSimulation:
		s.Simulation = &SimulationContent{}
		target = s.Simulation
	case SectionChallenge:
		s.Challenge = &ChallengeContent{}
		target = s.Challenge
	case SectionInfo:
		s.Info = &InfoContent{}
		target = s.Info
	default:
		// Exploration and future types stay raw-only.
		return nil
	}

	if err := json.Unmarshal(env.Content, target); err != nil {
		return fmt.Errorf("section %q: decode %s content: %w", env.ID, env.Type, err)
	}
	return nil
}

func (s Section) MarshalJSON() ([]byte, error) {
	env := sectionEnvelope{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Type:        s.Type,
	}

	var payload any
	switch {
	case s.Quiz != nil:
		payload = s.Quiz
	case s.Flashcards != nil:
		payload = s.Flashcards
	case s.Matching != nil:
		payload = s.Matching
	case s.Sorting != nil:
		payload = s.Sorting
	case s.Narrative != nil:
		payload = s.Narrative
	case s.Simulation != nil:
		payload = s.Simulation
	case s.Challenge != nil:
		payload = s.Challenge
	case s.Info != nil:
		payload = s.Info
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Content = raw
	} else {
		env.Content = s.RawContent
	}
	return json.Marshal(env)
}

// -- Quiz --

type QuizContent struct {
	Type      string         `json:"type"`
	Questions []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	QuestionType  string       `json:"questionType"`
	Options       []QuizOption `json:"options,omitempty"`
	CorrectAnswer Answer       `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
	Hint          string       `json:"hint,omitempty"`
	Points        int          `json:"points"`
	TimeLimit     int          `json:"timeLimit,omitempty"`
}

type QuizOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Answer holds a quiz answer value: an option index, a list of option indexes,
// or a text answer. Exactly one of the fields is meaningful.
type Answer struct {
	Index   *int
	Indexes []int
	Text    *string
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		a.Index = &n
		return nil
	}
	var ns []int
	if err := json.Unmarshal(data, &ns); err == nil {
		a.Indexes = ns
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Text = &s
		return nil
	}
	return fmt.Errorf("answer must be a number, number array or string: %s", data)
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.Index != nil:
		return json.Marshal(*a.Index)
	case a.Indexes != nil:
		return json.Marshal(a.Indexes)
	case a.Text != nil:
		return json.Marshal(*a.Text)
	}
	return []byte("null"), nil
}

// -- Flashcards --

type FlashcardsContent struct {
	Type     string      `json:"type"`
	Cards    []Flashcard `json:"cards"`
	TestMode string      `json:"testMode"`
}

type Flashcard struct {
	ID       string   `json:"id"`
	Front    CardFace `json:"front"`
	Back     CardFace `json:"back"`
	Hint     string   `json:"hint,omitempty"`
	Category string   `json:"category,omitempty"`
}

type CardFace struct {
	Text string `json:"text"`
}

// -- Matching --

type MatchingContent struct {
	Type       string      `json:"type"`
	Pairs      []MatchPair `json:"pairs"`
	MatchStyle string      `json:"matchStyle"`
	TimeLimit  int         `json:"timeLimit,omitempty"`
}

type MatchPair struct {
	ID    string    `json:"id"`
	Left  PairSide  `json:"left"`
	Right PairSide  `json:"right"`
}

type PairSide struct {
	Text string `json:"text"`
}

// -- Sorting --

type SortingContent struct {
	Type         string         `json:"type"`
	Items        []SortItem     `json:"items"`
	Categories   []SortCategory `json:"categories"`
	Instructions string         `json:"instructions"`
}

type SortItem struct {
	ID              string `json:"id"`
	Text            string `json:"text"`
	CorrectCategory string `json:"correctCategory"`
}

type SortCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// -- Narrative --

type NarrativeContent struct {
	Type       string           `json:"type"`
	Scenes     []NarrativeScene `json:"scenes"`
	StartScene string           `json:"startScene"`
}

type NarrativeScene struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Speaker    string            `json:"speaker,omitempty"`
	Background string            `json:"background,omitempty"`
	Choices    []NarrativeChoice `json:"choices,omitempty"`
	NextScene  string            `json:"nextScene,omitempty"`
	Actions    []SceneAction     `json:"actions,omitempty"`
	IsEnding   bool              `json:"isEnding,omitempty"`
	EndingType string            `json:"endingType,omitempty"`
}

type NarrativeChoice struct {
	ID          string           `json:"id"`
	Text        string           `json:"text"`
	TargetScene string           `json:"targetScene"`
	Condition   *ChoiceCondition `json:"condition,omitempty"`
	Effects     []ChoiceEffect   `json:"effects,omitempty"`
}

type ChoiceCondition struct {
	Type     string `json:"type"`
	Variable string `json:"variable"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type ChoiceEffect struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Value  any    `json:"value"`
}

type SceneAction struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// -- Simulation --

type SimulationContent struct {
	Type         string          `json:"type"`
	InitialState SimulationState `json:"initialState"`
	Resources    []SimResource   `json:"resources"`
	Actions      []SimAction     `json:"actions"`
	Events       []SimEvent      `json:"events"`
	Objectives   []SimObjective  `json:"objectives"`
	MaxTurns     int             `json:"maxTurns"`
}

type SimulationState struct {
	Turn                int                `json:"turn"`
	Resources           map[string]float64 `json:"resources"`
	Variables           map[string]any     `json:"variables"`
	UnlockedActions     []string           `json:"unlockedActions"`
	CompletedObjectives []string           `json:"completedObjectives"`
}

type SimResource struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Icon         string  `json:"icon"`
	InitialValue float64 `json:"initialValue"`
	MinValue     float64 `json:"minValue"`
	MaxValue     float64 `json:"maxValue"`
	Description  string  `json:"description"`
}

type SimAction struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Icon            string             `json:"icon"`
	Cost            map[string]float64 `json:"cost"`
	Effects         map[string]float64 `json:"effects"`
	UnlockCondition string             `json:"unlockCondition,omitempty"`
	Cooldown        int                `json:"cooldown,omitempty"`
}

type SimEvent struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Probability float64            `json:"probability"`
	Effects     map[string]float64 `json:"effects"`
	Choices     []SimEventChoice   `json:"choices,omitempty"`
}

// SimEventChoice is a player response to a fired event; its effects replace
// the event's own.
type SimEventChoice struct {
	Text    string             `json:"text"`
	Effects map[string]float64 `json:"effects"`
}

type SimObjective struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Target      string  `json:"target"`
	Value       float64 `json:"value"`
	Required    bool    `json:"required"`
	Points      int     `json:"points"`
}

// -- Challenge --

type ChallengeContent struct {
	Type          string          `json:"type"`
	ChallengeType string          `json:"challengeType"`
	Items         []ChallengeItem `json:"items"`
	TimeLimit     int             `json:"timeLimit"`
	TargetScore   int             `json:"targetScore"`
	MaxMistakes   int             `json:"maxMistakes"`
}

type ChallengeItem struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options,omitempty"`
	Points        int      `json:"points"`
	TimeBonus     int      `json:"timeBonus,omitempty"`
}

// -- Info --

type InfoContent struct {
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Content []InfoBlock `json:"content"`
}

type InfoBlock struct {
	Type    string `json:"type"`
	Content any    `json:"content"`
}

// -- Progression and scoring --

type ProgressionConfig struct {
	Type                   string   `json:"type"`
	SectionOrder           []string `json:"sectionOrder,omitempty"`
	StartSection           string   `json:"startSection,omitempty"`
	MinimumScoreToProgress int      `json:"minimumScoreToProgress,omitempty"`
	ShowProgress           bool     `json:"showProgress"`
}

type ScoringConfig struct {
	MaxScore         int           `json:"maxScore"`
	PointsPerCorrect int           `json:"pointsPerCorrect"`
	PenaltyPerWrong  int           `json:"penaltyPerWrong"`
	TimeBonus        bool          `json:"timeBonus"`
	StreakMultiplier float64       `json:"streakMultiplier"`
	Ratings          []ScoreRating `json:"ratings"`
}

type ScoreRating struct {
	MinPercentage int    `json:"minPercentage"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Stars         int    `json:"stars"`
}

// SectionByID returns the section with the given id, or nil.
func (g *GameSpec) SectionByID(id string) *Section {
	for i := range g.Content.Sections {
		if g.Content.Sections[i].ID == id {
			return &g.Content.Sections[i]
		}
	}
	return nil
}
