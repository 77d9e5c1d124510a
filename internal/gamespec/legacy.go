package gamespec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GameInfo carries catalog metadata used to fill a converted spec's metadata
// block when the stored content predates the spec format.
type GameInfo struct {
	Title           string
	Description     string
	Topic           string
	Tags            []string
	Difficulty      string
	Complexity      string
	DurationMinutes int
	Language        string
}

// legacyContent matches the three flat content shapes games were stored in
// before the spec format existed.
type legacyContent struct {
	Questions []legacyQuestion `json:"questions"`
	Cards     []legacyCard     `json:"cards"`
}

type legacyQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type legacyCard struct {
	Front   *string `json:"front"`
	Back    string  `json:"back"`
	Hint    string  `json:"hint"`
	Content string  `json:"content"`
	MatchID *string `json:"matchId"`
}

// IsLegacy reports whether raw JSON looks like a legacy flat content payload
// rather than a full spec.
func IsLegacy(data []byte) bool {
	var lc legacyContent
	if err := json.Unmarshal(data, &lc); err != nil {
		return false
	}
	if len(lc.Questions) > 0 {
		return true
	}
	if len(lc.Cards) > 0 {
		return lc.Cards[0].Front != nil || lc.Cards[0].MatchID != nil
	}
	return false
}

// ConvertLegacy upgrades a legacy flat payload into a full spec with a single
// "main" section, defaulted theme, config, progression and scoring.
func ConvertLegacy(data []byte, info GameInfo) (*GameSpec, error) {
	var lc legacyContent
	if err := json.Unmarshal(data, &lc); err != nil {
		return nil, fmt.Errorf("parse legacy content: %w", err)
	}

	var section Section
	var gameType string
	switch {
	case len(lc.Questions) > 0:
		gameType = "quiz"
		section = convertLegacyQuiz(lc.Questions)
	case len(lc.Cards) > 0 && lc.Cards[0].Front != nil:
		gameType = "flashcard"
		section = convertLegacyFlashcards(lc.Cards)
	case len(lc.Cards) > 0 && lc.Cards[0].MatchID != nil:
		gameType = "matching"
		section = convertLegacyMatching(lc.Cards)
	default:
		return nil, fmt.Errorf("unrecognized legacy content shape")
	}

	difficulty := strings.ToLower(info.Difficulty)
	if difficulty == "" {
		difficulty = "intermediate"
	}
	complexity := strings.ToLower(info.Complexity)
	if info.Complexity == "Normal" {
		complexity = "standard"
	}
	if complexity == "" {
		complexity = "basic"
	}

	title := info.Title
	if title == "" {
		title = "Game"
	}
	topic := info.Topic
	if topic == "" {
		topic = "General"
	}
	minutes := info.DurationMinutes
	if minutes == 0 {
		minutes = 10
	}
	language := info.Language
	if language == "" {
		language = "English"
	}
	tags := info.Tags
	if tags == nil {
		tags = []string{}
	}

	return &GameSpec{
		Version: SpecVersion,
		Metadata: Metadata{
			Title:              title,
			Description:        info.Description,
			Subject:            topic,
			Topic:              topic,
			Difficulty:         difficulty,
			Complexity:         complexity,
			EstimatedMinutes:   minutes,
			LearningObjectives: []string{},
			Tags:               tags,
			Language:           language,
		},
		Theme:  DefaultTheme(),
		Config: DefaultConfig(gameType),
		Content: Content{
			Sections: []Section{section},
		},
		Progression: ProgressionConfig{
			Type:         "linear",
			SectionOrder: []string{"main"},
			ShowProgress: true,
		},
		Scoring: DefaultScoring(),
	}, nil
}

func convertLegacyQuiz(questions []legacyQuestion) Section {
	qs := make([]QuizQuestion, 0, len(questions))
	for i, q := range questions {
		opts := make([]QuizOption, 0, len(q.Options))
		for j, opt := range q.Options {
			opts = append(opts, QuizOption{ID: fmt.Sprintf("opt%d", j), Text: opt})
		}
		idx := q.CorrectAnswer
		qs = append(qs, QuizQuestion{
			ID:            fmt.Sprintf("q%d", i+1),
			Question:      q.Question,
			QuestionType:  "single-choice",
			Options:       opts,
			CorrectAnswer: Answer{Index: &idx},
			Explanation:   q.Explanation,
			Points:        10,
		})
	}
	return Section{
		ID:    "main",
		Title: "Quiz",
		Type:  SectionQuiz,
		Quiz:  &QuizContent{Type: "quiz", Questions: qs},
	}
}

func convertLegacyFlashcards(cards []legacyCard) Section {
	out := make([]Flashcard, 0, len(cards))
	for i, c := range cards {
		front := ""
		if c.Front != nil {
			front = *c.Front
		}
		out = append(out, Flashcard{
			ID:    fmt.Sprintf("card%d", i+1),
			Front: CardFace{Text: front},
			Back:  CardFace{Text: c.Back},
			Hint:  c.Hint,
		})
	}
	return Section{
		ID:    "main",
		Title: "Flashcards",
		Type:  SectionFlashcards,
		Flashcards: &FlashcardsContent{
			Type:     "flashcards",
			Cards:    out,
			TestMode: "flip-reveal",
		},
	}
}

func convertLegacyMatching(cards []legacyCard) Section {
	// Group cards by matchId; a lone card pairs with itself.
	order := make([]string, 0)
	groups := make(map[string][]legacyCard)
	for _, c := range cards {
		if c.MatchID == nil {
			continue
		}
		id := *c.MatchID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], c)
	}

	pairs := make([]MatchPair, 0, len(order))
	for i, id := range order {
		group := groups[id]
		left := group[0].Content
		right := left
		if len(group) > 1 && group[1].Content != "" {
			right = group[1].Content
		}
		pairs = append(pairs, MatchPair{
			ID:    fmt.Sprintf("pair%d", i+1),
			Left:  PairSide{Text: left},
			Right: PairSide{Text: right},
		})
	}
	return Section{
		ID:    "main",
		Title: "Matching",
		Type:  SectionMatching,
		Matching: &MatchingContent{
			Type:       "matching",
			Pairs:      pairs,
			MatchStyle: "tap-tap",
		},
	}
}
