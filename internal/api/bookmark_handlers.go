package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/models"
)

type toggleBookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	if uid == "" {
		handleError(w, r, errors.NewUnauthorizedError())
		return
	}

	bookmarked, err := s.BookmarkService.Toggle(r.Context(), uid, chi.URLParam(r, "gameId"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toggleBookmarkResponse{Bookmarked: bookmarked})
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	if uid == "" {
		handleError(w, r, errors.NewUnauthorizedError())
		return
	}

	games, err := s.BookmarkService.ListBookmarkedGames(r.Context(), uid)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if games == nil {
		games = []models.Game{}
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"games": games})
}
