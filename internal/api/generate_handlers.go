package api

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/generator"
	"github.com/evka/playforge/internal/worker"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	if uid == "" {
		handleError(w, r, errors.NewUnauthorizedError())
		return
	}

	var req generator.Request
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	game, err := s.GenerationService.GenerateGame(r.Context(), req, uid)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, game)
}

func (s *Server) handleGenerateAsync(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	if uid == "" {
		handleError(w, r, errors.NewUnauthorizedError())
		return
	}

	var req generator.Request
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	jobID, err := s.JobQueue.EnqueueGeneration(req, uid)
	if err != nil {
		if stderrors.Is(err, worker.ErrQueueFull) {
			respondJSON(w, r, http.StatusTooManyRequests, map[string]string{
				"error": "generation queue is full, try again later",
			})
			return
		}
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusAccepted, map[string]string{"jobId": jobID})
}

func (s *Server) handleGenerationStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	status, ok := s.JobQueue.GenerationStatus(jobID)
	if !ok {
		handleError(w, r, errors.NewNotFoundError("generation job", jobID))
		return
	}

	respondJSON(w, r, http.StatusOK, status)
}
