package services

import (
	"encoding/json"

	"github.com/evka/playforge/internal/gamespec"
	"github.com/evka/playforge/internal/models"
)

func specJSON(spec *gamespec.GameSpec) (string, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// difficultyDisplay maps spec difficulty levels onto catalog labels.
func difficultyDisplay(level string) models.GameDifficulty {
	switch level {
	case "beginner":
		return models.DifficultyEasy
	case "advanced":
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}
