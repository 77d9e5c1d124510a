package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.NewBadRequestError("request body required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}

// gameFilterFromQuery builds a catalog filter from list query parameters.
func gameFilterFromQuery(r *http.Request) models.GameFilter {
	q := r.URL.Query()

	limit := 20
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	sortBy := q.Get("sort")
	switch sortBy {
	case "popular", "liked", "recent":
	default:
		sortBy = "recent"
	}

	return models.GameFilter{
		Search:     q.Get("search"),
		Topic:      q.Get("topic"),
		Difficulty: models.GameDifficulty(q.Get("difficulty")),
		Complexity: models.GameComplexity(q.Get("complexity")),
		Format:     models.GameFormat(q.Get("format")),
		Language:   q.Get("language"),
		CreatedBy:  q.Get("createdBy"),
		SortBy:     sortBy,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
}
