package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
)

type listGamesResponse struct {
	Games []models.GameWithBookmark `json:"games"`
	Total int                       `json:"total"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	filter := gameFilterFromQuery(r)

	games, total, err := s.GameService.ListGames(r.Context(), filter, userID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if games == nil {
		games = []models.GameWithBookmark{}
	}

	respondJSON(w, r, http.StatusOK, listGamesResponse{Games: games, Total: total})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	game, err := s.GameService.GetGame(r.Context(), id, userID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, game)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	if uid == "" {
		handleError(w, r, errors.NewUnauthorizedError())
		return
	}

	var game models.Game
	if err := decodeJSON(r, &game); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.GameService.CreateGame(r.Context(), game, uid)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	if uid == "" {
		handleError(w, r, errors.NewUnauthorizedError())
		return
	}

	var game models.Game
	if err := decodeJSON(r, &game); err != nil {
		handleError(w, r, err)
		return
	}
	game.ID = chi.URLParam(r, "id")

	updated, err := s.GameService.UpdateGame(r.Context(), game, uid)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	if uid == "" {
		handleError(w, r, errors.NewUnauthorizedError())
		return
	}

	if err := s.GameService.DeleteGame(r.Context(), chi.URLParam(r, "id"), uid); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handlePlayGame returns the playable spec and counts the play. Content that
// no longer parses surfaces as a content format error rather than a 500.
func (s *Server) handlePlayGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	spec, err := s.GameService.LoadSpec(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.GameService.RecordPlay(r.Context(), id); err != nil {
		logger.FromContext(r.Context()).Warn("failed to record play for game %s: %v", id, err)
	}

	respondJSON(w, r, http.StatusOK, spec)
}

func (s *Server) handleLikeGame(w http.ResponseWriter, r *http.Request) {
	if err := s.GameService.LikeGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
