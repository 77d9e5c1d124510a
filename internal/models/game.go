package models

import "time"

// Display-facing enumerations. These are what the catalog stores and what
// clients filter on; the generation pipeline maps engine-level formats and
// complexities onto them.
type GameDifficulty string

const (
	DifficultyEasy   GameDifficulty = "Easy"
	DifficultyMedium GameDifficulty = "Medium"
	DifficultyHard   GameDifficulty = "Hard"
)

type GameComplexity string

const (
	ComplexityBasic   GameComplexity = "Basic"
	ComplexityNormal  GameComplexity = "Normal"
	ComplexityComplex GameComplexity = "Complex"
)

type GameFormat string

const (
	FormatQuiz       GameFormat = "Quiz"
	FormatFlashcards GameFormat = "Flashcards"
	FormatMemory     GameFormat = "Memory"
	FormatPuzzle     GameFormat = "Puzzle"
	FormatSimulation GameFormat = "Simulation"
	FormatScenario   GameFormat = "Scenario"
	FormatAdventure  GameFormat = "Adventure"
)

type Game struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Topic           string         `json:"topic"`
	Tags            []string       `json:"tags"`
	Difficulty      GameDifficulty `json:"difficulty"`
	Complexity      GameComplexity `json:"complexity"`
	Format          GameFormat     `json:"format"`
	DurationMinutes int            `json:"durationMinutes"`
	Language        string         `json:"language"`
	ThumbnailURL    string         `json:"thumbnailUrl,omitempty"`
	LikesCount      int            `json:"likesCount"`
	PlaysCount      int            `json:"playsCount"`
	CreatedByID     string         `json:"createdById,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`

	// GameContent holds the raw spec JSON the runtime interprets. It is kept
	// opaque at this layer; the gamespec package owns parsing and validation.
	GameContent string `json:"gameContent,omitempty"`
}

// GameWithBookmark decorates a catalog entry with the caller's bookmark state.
type GameWithBookmark struct {
	Game
	IsBookmarked bool `json:"isBookmarked"`
}

// GameFilter narrows catalog listings. Zero values mean "no constraint".
type GameFilter struct {
	Search     string
	Topic      string
	Difficulty GameDifficulty
	Complexity GameComplexity
	Format     GameFormat
	Language   string
	CreatedBy  string
	SortBy     string
	Limit      int
	Offset     int
}
