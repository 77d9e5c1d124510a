package services

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
)

// BookmarkService handles saved-games logic
type BookmarkService interface {
	Toggle(ctx context.Context, userID, gameID string) (bookmarked bool, err error)
	ListBookmarkedGames(ctx context.Context, userID string) ([]models.Game, error)
}

type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	gameRepo     repository.GameRepository
}

// NewBookmarkService creates a new BookmarkService
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, gameRepo repository.GameRepository) BookmarkService {
	return &bookmarkService{bookmarkRepo: bookmarkRepo, gameRepo: gameRepo}
}

func (s *bookmarkService) Toggle(ctx context.Context, userID, gameID string) (bool, error) {
	log := logger.FromContext(ctx)
	log.Debug("toggling bookmark: user=%s game=%s", userID, gameID)

	if userID == "" {
		return false, errors.NewUnauthorizedError()
	}
	if _, err := s.gameRepo.Get(ctx, gameID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return false, errors.NewNotFoundError("game", gameID)
		}
		return false, errors.NewInternalError(err)
	}

	exists, err := s.bookmarkRepo.Exists(ctx, userID, gameID)
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	if exists {
		if err := s.bookmarkRepo.Remove(ctx, userID, gameID); err != nil {
			return false, errors.NewInternalError(err)
		}
		return false, nil
	}

	err = s.bookmarkRepo.Add(ctx, models.Bookmark{
		ID:     uuid.NewString(),
		UserID: userID,
		GameID: gameID,
	})
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	return true, nil
}

func (s *bookmarkService) ListBookmarkedGames(ctx context.Context, userID string) ([]models.Game, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, errors.NewUnauthorizedError()
	}
	ids, err := s.bookmarkRepo.ListGameIDs(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	games := make([]models.Game, 0, len(ids))
	for _, id := range ids {
		game, err := s.gameRepo.Get(ctx, id)
		if err != nil {
			// A bookmarked game may have been deleted since.
			if stderrors.Is(err, sql.ErrNoRows) {
				continue
			}
			log.Warn("failed to load bookmarked game %s: %v", id, err)
			continue
		}
		games = append(games, *game)
	}
	return games, nil
}
