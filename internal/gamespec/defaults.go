package gamespec

// DefaultTheme returns the house theme applied when a spec omits theming.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   "#B6EBE7",
		SecondaryColor: "#7DD3C8",
		Background: Background{
			Type:  "gradient",
			Value: "linear-gradient(135deg, #B6EBE7 0%, #7DD3C8 100%)",
		},
		Icon: "🎮",
		Mood: "playful",
	}
}

// DefaultConfig returns permissive game rules: no timers, no lives, hints on.
func DefaultConfig(gameType string) Config {
	return Config{
		GameType:          gameType,
		TimeLimit:         0,
		QuestionTimeLimit: 0,
		AllowSkip:         true,
		AllowBack:         true,
		HintsEnabled:      true,
		MaxHints:          3,
		Lives:             0,
		ShuffleContent:    false,
		FeedbackType:      "immediate",
		ShowCorrectAnswer: true,
	}
}

// DefaultScoring returns the standard 100-point scoring with four rating tiers.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		MaxScore:         100,
		PointsPerCorrect: 10,
		PenaltyPerWrong:  0,
		TimeBonus:        false,
		StreakMultiplier: 1,
		Ratings: []ScoreRating{
			{MinPercentage: 90, Label: "Excellent", Message: "Outstanding work!", Stars: 3},
			{MinPercentage: 70, Label: "Good", Message: "Well done!", Stars: 2},
			{MinPercentage: 50, Label: "Fair", Message: "Keep practicing!", Stars: 1},
			{MinPercentage: 0, Label: "Needs Work", Message: "Try again!", Stars: 0},
		},
	}
}

// Normalize fills in missing optional blocks so the engine never has to
// deal with a partially specified game. Section content is left untouched.
func Normalize(spec *GameSpec, expectedType string) {
	if spec.Version == "" {
		spec.Version = SpecVersion
	}
	if spec.Metadata.LearningObjectives == nil {
		spec.Metadata.LearningObjectives = []string{}
	}
	if spec.Metadata.Tags == nil {
		spec.Metadata.Tags = []string{}
	}
	if spec.Metadata.Language == "" {
		spec.Metadata.Language = "English"
	}
	if spec.Theme == (Theme{}) {
		spec.Theme = DefaultTheme()
	}
	if spec.Config.isZero() {
		spec.Config = DefaultConfig(expectedType)
	}
	if spec.Progression.Type == "" {
		order := make([]string, 0, len(spec.Content.Sections))
		for _, s := range spec.Content.Sections {
			order = append(order, s.ID)
		}
		spec.Progression = ProgressionConfig{
			Type:         "linear",
			SectionOrder: order,
			ShowProgress: true,
		}
	}
	if spec.Scoring.MaxScore == 0 && len(spec.Scoring.Ratings) == 0 {
		spec.Scoring = DefaultScoring()
	}
}
