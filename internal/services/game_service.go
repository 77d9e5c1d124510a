package services

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/gamespec"
	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
)

// GameService handles catalog business logic
type GameService interface {
	GetGame(ctx context.Context, id, userID string) (*models.GameWithBookmark, error)
	ListGames(ctx context.Context, filter models.GameFilter, userID string) ([]models.GameWithBookmark, int, error)
	CreateGame(ctx context.Context, game models.Game, userID string) (*models.Game, error)
	UpdateGame(ctx context.Context, game models.Game, userID string) (*models.Game, error)
	DeleteGame(ctx context.Context, id, userID string) error
	LoadSpec(ctx context.Context, id string) (*gamespec.GameSpec, error)
	RecordPlay(ctx context.Context, id string) error
	LikeGame(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo     repository.GameRepository
	bookmarkRepo repository.BookmarkRepository
	userRepo     repository.UserRepository
}

// NewGameService creates a new GameService
func NewGameService(gameRepo repository.GameRepository, bookmarkRepo repository.BookmarkRepository, userRepo repository.UserRepository) GameService {
	return &gameService{
		gameRepo:     gameRepo,
		bookmarkRepo: bookmarkRepo,
		userRepo:     userRepo,
	}
}

func (s *gameService) GetGame(ctx context.Context, id, userID string) (*models.GameWithBookmark, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting game: id=%s", id)

	game, err := s.gameRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("game", id)
		}
		log.Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := &models.GameWithBookmark{Game: *game}
	if userID != "" {
		bookmarked, err := s.bookmarkRepo.Exists(ctx, userID, id)
		if err != nil {
			log.Warn("failed to check bookmark state: %v", err)
		}
		out.IsBookmarked = bookmarked
	}
	return out, nil
}

func (s *gameService) ListGames(ctx context.Context, filter models.GameFilter, userID string) ([]models.GameWithBookmark, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games: search=%q format=%s sort=%s", filter.Search, filter.Format, filter.SortBy)

	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.gameRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	bookmarked := map[string]bool{}
	if userID != "" {
		ids, err := s.bookmarkRepo.ListGameIDs(ctx, userID)
		if err != nil {
			log.Warn("failed to list bookmarks: %v", err)
		}
		for _, id := range ids {
			bookmarked[id] = true
		}
	}

	out := make([]models.GameWithBookmark, 0, len(games))
	for _, g := range games {
		out = append(out, models.GameWithBookmark{Game: g, IsBookmarked: bookmarked[g.ID]})
	}
	return out, total, nil
}

func (s *gameService) CreateGame(ctx context.Context, game models.Game, userID string) (*models.Game, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating game: title=%q", game.Title)

	if game.Title == "" {
		return nil, errors.NewValidationError("title", "must not be empty")
	}
	// Stored content must be playable; a legacy shape is upgraded on the way in.
	spec, err := gamespec.Load(game.GameContent, gameInfoFrom(game))
	if err != nil {
		return nil, err
	}
	content, err := specJSON(spec)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	game.GameContent = content

	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	game.CreatedByID = userID
	if game.Language == "" {
		game.Language = "English"
	}

	if err := s.gameRepo.Insert(ctx, game); err != nil {
		log.Error("failed to insert game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.fetch(ctx, game.ID)
}

func (s *gameService) UpdateGame(ctx context.Context, game models.Game, userID string) (*models.Game, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating game: id=%s", game.ID)

	existing, err := s.gameRepo.Get(ctx, game.ID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("game", game.ID)
		}
		return nil, errors.NewInternalError(err)
	}
	if err := s.authorize(ctx, existing, userID); err != nil {
		return nil, err
	}

	if game.GameContent != "" && game.GameContent != existing.GameContent {
		spec, err := gamespec.Load(game.GameContent, gameInfoFrom(game))
		if err != nil {
			return nil, err
		}
		content, err := specJSON(spec)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		game.GameContent = content
	} else {
		game.GameContent = existing.GameContent
	}
	game.CreatedByID = existing.CreatedByID

	if err := s.gameRepo.Update(ctx, game); err != nil {
		log.Error("failed to update game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.fetch(ctx, game.ID)
}

func (s *gameService) DeleteGame(ctx context.Context, id, userID string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting game: id=%s", id)

	existing, err := s.gameRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("game", id)
		}
		return errors.NewInternalError(err)
	}
	if err := s.authorize(ctx, existing, userID); err != nil {
		return err
	}

	if err := s.gameRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete game: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// LoadSpec parses a stored game's content into a playable spec. Content that
// cannot be recognized surfaces as a content format error, not a crash.
func (s *gameService) LoadSpec(ctx context.Context, id string) (*gamespec.GameSpec, error) {
	game, err := s.gameRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("game", id)
		}
		return nil, errors.NewInternalError(err)
	}
	return gamespec.Load(game.GameContent, gameInfoFrom(*game))
}

func (s *gameService) RecordPlay(ctx context.Context, id string) error {
	if err := s.gameRepo.IncrementPlays(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("game", id)
		}
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *gameService) LikeGame(ctx context.Context, id string) error {
	if err := s.gameRepo.IncrementLikes(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("game", id)
		}
		return errors.NewInternalError(err)
	}
	return nil
}

// authorize allows the creator and admins to modify a game.
func (s *gameService) authorize(ctx context.Context, game *models.Game, userID string) error {
	if userID == "" {
		return errors.NewUnauthorizedError()
	}
	if game.CreatedByID == userID {
		return nil
	}
	user, err := s.userRepo.Get(ctx, userID)
	if err == nil && user.Role == models.RoleAdmin {
		return nil
	}
	return errors.NewNotFoundError("game", game.ID)
}

func (s *gameService) fetch(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.gameRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return game, nil
}

func gameInfoFrom(g models.Game) gamespec.GameInfo {
	return gamespec.GameInfo{
		Title:           g.Title,
		Description:     g.Description,
		Topic:           g.Topic,
		Tags:            g.Tags,
		Difficulty:      difficultyLevel(g.Difficulty),
		Complexity:      string(g.Complexity),
		DurationMinutes: g.DurationMinutes,
		Language:        g.Language,
	}
}

// difficultyLevel maps catalog difficulty labels onto spec levels.
func difficultyLevel(d models.GameDifficulty) string {
	switch d {
	case models.DifficultyEasy:
		return "beginner"
	case models.DifficultyMedium:
		return "intermediate"
	case models.DifficultyHard:
		return "advanced"
	default:
		return ""
	}
}
