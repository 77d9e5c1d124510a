package engine

import (
	"sort"

	"github.com/evka/playforge/internal/gamespec"
)

// fallbackRating is used when no configured rating threshold matches.
var fallbackRating = gamespec.ScoreRating{
	MinPercentage: 0,
	Label:         "Keep Trying",
	Message:       "Practice makes perfect!",
	Stars:         0,
}

// CalculateRating maps a final score onto the configured rating tiers. The
// highest tier whose threshold the score percentage meets wins. With no max
// score there is no percentage to compare, so every game gets the fallback.
func CalculateRating(score int, scoring gamespec.ScoringConfig) gamespec.ScoreRating {
	if scoring.MaxScore <= 0 {
		return fallbackRating
	}
	percentage := float64(score) / float64(scoring.MaxScore) * 100

	ratings := make([]gamespec.ScoreRating, len(scoring.Ratings))
	copy(ratings, scoring.Ratings)
	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].MinPercentage > ratings[j].MinPercentage
	})

	for _, r := range ratings {
		if percentage >= float64(r.MinPercentage) {
			return r
		}
	}
	return fallbackRating
}
