package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/evka/playforge/internal/db"
	"github.com/evka/playforge/internal/jobs"
	"github.com/evka/playforge/internal/services"
)

// Server wires HTTP routes to the service layer.
type Server struct {
	DB                *db.DB
	GameService       services.GameService
	BookmarkService   services.BookmarkService
	UserService       services.UserService
	GenerationService services.GenerationService
	JobQueue          jobs.JobQueue
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(60 * time.Second))
	r.Use(s.identityMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/games", s.handleListGames)
		r.Post("/games", s.handleCreateGame)
		r.Get("/games/{id}", s.handleGetGame)
		r.Put("/games/{id}", s.handleUpdateGame)
		r.Delete("/games/{id}", s.handleDeleteGame)
		r.Post("/games/{id}/play", s.handlePlayGame)
		r.Post("/games/{id}/like", s.handleLikeGame)

		r.Get("/bookmarks", s.handleListBookmarks)
		r.Post("/bookmarks/{gameId}/toggle", s.handleToggleBookmark)

		r.Post("/generate", s.handleGenerate)
		r.Post("/generate/async", s.handleGenerateAsync)
		r.Get("/generate/{jobId}", s.handleGenerationStatus)
	})
	return r
}
