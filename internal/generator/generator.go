// Package generator turns generation requests into model prompts and parses
// the model output into a playable game spec.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/evka/playforge/internal/ai"
	"github.com/evka/playforge/internal/gamespec"
	"github.com/evka/playforge/internal/logger"
)

// Request describes the game to generate.
type Request struct {
	Topic           string `json:"topic"`
	Subject         string `json:"subject"`
	Difficulty      string `json:"difficulty"`
	Complexity      string `json:"complexity"`
	DurationMinutes int    `json:"durationMinutes"`
	Language        string `json:"language,omitempty"`
	CustomPrompt    string `json:"customPrompt,omitempty"`
}

// gameTypesByComplexity maps a complexity tier to the game types it may
// produce.
var gameTypesByComplexity = map[string][]string{
	"basic":    {"quiz", "flashcard", "matching", "sorting", "timed-challenge"},
	"standard": {"simulation", "puzzle", "sequence"},
	"complex":  {"narrative", "exploration"},
}

// keywordTypes maps prompt keywords to the game type they ask for, checked in
// order.
var keywordTypes = []struct {
	keywords []string
	gameType string
}{
	{[]string{"quiz", "question"}, "quiz"},
	{[]string{"flashcard", "memorize"}, "flashcard"},
	{[]string{"match", "pair"}, "matching"},
	{[]string{"sort", "categorize"}, "sorting"},
	{[]string{"story", "narrative", "adventure"}, "narrative"},
	{[]string{"simulation", "manage", "strategy"}, "simulation"},
	{[]string{"challenge", "speed", "timed"}, "timed-challenge"},
	{[]string{"explore", "discover"}, "exploration"},
}

// SelectGameType picks a game type for the requested complexity. A custom
// prompt naming a specific style wins; otherwise one of the tier's types is
// chosen at random.
func SelectGameType(complexity, customPrompt string, rng *rand.Rand) string {
	if customPrompt != "" {
		lower := strings.ToLower(customPrompt)
		for _, kt := range keywordTypes {
			for _, kw := range kt.keywords {
				if strings.Contains(lower, kw) {
					return kt.gameType
				}
			}
		}
	}
	types, ok := gameTypesByComplexity[complexity]
	if !ok {
		types = gameTypesByComplexity["basic"]
	}
	return types[rng.Intn(len(types))]
}

// ComplexityDisplay returns the user-facing label for a complexity tier.
func ComplexityDisplay(complexity string) string {
	switch complexity {
	case "basic":
		return "Basic"
	case "standard":
		return "Normal"
	case "complex":
		return "Complex"
	default:
		return "Normal"
	}
}

// FormatForGameType maps a generated game type to the catalog format label.
func FormatForGameType(gameType string) string {
	switch gameType {
	case "quiz", "timed-challenge":
		return "Quiz"
	case "flashcard":
		return "Flashcards"
	case "matching":
		return "Memory"
	case "sorting", "puzzle", "sequence":
		return "Puzzle"
	case "simulation":
		return "Simulation"
	case "narrative":
		return "Scenario"
	case "exploration":
		return "Adventure"
	default:
		return "Quiz"
	}
}

// Generator produces game specs through a model provider.
type Generator struct {
	provider ai.Provider
	model    string
	rng      *rand.Rand
	log      *logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used for game type selection.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// New creates a Generator backed by the given provider.
func New(provider ai.Provider, model string, log *logger.Logger, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		model:    model,
		rng:      rand.New(rand.NewSource(rand.Int63())),
		log:      log.WithPrefix("generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Result is a generated spec together with the type that was asked for.
type Result struct {
	Spec     *gamespec.GameSpec
	GameType string
}

// Generate asks the model for a complete game spec and parses the reply.
// Model output wrapped in code fences or using legacy shapes is handled by
// the spec loader.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	gameType := SelectGameType(req.Complexity, req.CustomPrompt, g.rng)
	g.log.Info("generating game: topic=%q type=%s complexity=%s", req.Topic, gameType, req.Complexity)

	resp, err := g.provider.Complete(ctx, ai.CompletionRequest{
		Model: g.model,
		Messages: []ai.Message{
			{Role: "system", Content: systemPrompt(req.Complexity)},
			{Role: "user", Content: userPrompt(req, gameType)},
		},
		Temperature: 0.7,
		MaxTokens:   8000,
	})
	if err != nil {
		return nil, fmt.Errorf("model completion: %w", err)
	}
	g.log.Debug("model reply: model=%s tokens=%d", resp.Model, resp.TotalTokens())

	info := gamespec.GameInfo{
		Title:           fmt.Sprintf("%s Challenge", req.Topic),
		Topic:           req.Topic,
		Difficulty:      req.Difficulty,
		Complexity:      req.Complexity,
		DurationMinutes: req.DurationMinutes,
		Language:        req.Language,
	}
	spec, err := gamespec.Load(resp.Content, info)
	if err != nil {
		return nil, err
	}
	return &Result{Spec: spec, GameType: gameType}, nil
}

// GenerateTitle asks the model for a short title, falling back to a plain one
// when the model is unavailable.
func (g *Generator) GenerateTitle(ctx context.Context, topic, gameType string) string {
	resp, err := g.provider.Complete(ctx, ai.CompletionRequest{
		Model: g.model,
		Messages: []ai.Message{
			{Role: "system", Content: "Generate a catchy, engaging title for an educational game. Respond with ONLY the title."},
			{Role: "user", Content: fmt.Sprintf("Create a title for a %s game about %s.", gameType, topic)},
		},
		Temperature: 0.9,
		MaxTokens:   50,
	})
	if err != nil {
		g.log.Warn("title generation failed, using fallback: %v", err)
		return fmt.Sprintf("%s Challenge", topic)
	}
	return strings.Trim(strings.TrimSpace(resp.Content), `"'`)
}

// GenerateDescription asks the model for a one or two sentence description.
func (g *Generator) GenerateDescription(ctx context.Context, topic, gameType, difficulty string) string {
	resp, err := g.provider.Complete(ctx, ai.CompletionRequest{
		Model: g.model,
		Messages: []ai.Message{
			{Role: "system", Content: "Write a brief, engaging description (1-2 sentences) for an educational game. Respond with ONLY the description."},
			{Role: "user", Content: fmt.Sprintf("Describe a %s level %s game about %s.", difficulty, gameType, topic)},
		},
		Temperature: 0.8,
		MaxTokens:   100,
	})
	if err != nil {
		g.log.Warn("description generation failed, using fallback: %v", err)
		return fmt.Sprintf("A %s level %s game about %s.", difficulty, gameType, topic)
	}
	return strings.TrimSpace(resp.Content)
}
