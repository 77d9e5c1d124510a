package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/generator"
	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
)

// GenerationService turns generation requests into stored catalog games.
type GenerationService interface {
	GenerateGame(ctx context.Context, req generator.Request, userID string) (*models.Game, error)
}

type generationService struct {
	gen      *generator.Generator
	gameRepo repository.GameRepository
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(gen *generator.Generator, gameRepo repository.GameRepository) GenerationService {
	return &generationService{gen: gen, gameRepo: gameRepo}
}

var validComplexities = map[string]bool{"basic": true, "standard": true, "complex": true}
var validDifficulties = map[string]bool{"beginner": true, "intermediate": true, "advanced": true}

func (s *generationService) GenerateGame(ctx context.Context, req generator.Request, userID string) (*models.Game, error) {
	log := logger.FromContext(ctx)

	if req.Topic == "" {
		return nil, errors.NewValidationError("topic", "must not be empty")
	}
	if req.Subject == "" {
		req.Subject = req.Topic
	}
	if req.Difficulty == "" {
		req.Difficulty = "intermediate"
	}
	if !validDifficulties[req.Difficulty] {
		return nil, errors.NewValidationError("difficulty", "must be beginner, intermediate or advanced")
	}
	if req.Complexity == "" {
		req.Complexity = "basic"
	}
	if !validComplexities[req.Complexity] {
		return nil, errors.NewValidationError("complexity", "must be basic, standard or complex")
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 10
	}

	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		log.Error("generation failed: %v", err)
		return nil, err
	}

	content, err := specJSON(res.Spec)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	meta := res.Spec.Metadata
	title := meta.Title
	if title == "" {
		title = s.gen.GenerateTitle(ctx, req.Topic, res.GameType)
	}
	description := meta.Description
	if description == "" {
		description = s.gen.GenerateDescription(ctx, req.Topic, res.GameType, req.Difficulty)
	}
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	language := req.Language
	if language == "" {
		language = "English"
	}

	game := models.Game{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     description,
		Topic:           req.Topic,
		Tags:            tags,
		Difficulty:      difficultyDisplay(req.Difficulty),
		Complexity:      models.GameComplexity(generator.ComplexityDisplay(req.Complexity)),
		Format:          models.GameFormat(generator.FormatForGameType(res.GameType)),
		DurationMinutes: req.DurationMinutes,
		Language:        language,
		CreatedByID:     userID,
		GameContent:     content,
	}
	if err := s.gameRepo.Insert(ctx, game); err != nil {
		log.Error("failed to store generated game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stored, err := s.gameRepo.Get(ctx, game.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("generated game stored: id=%s format=%s", stored.ID, stored.Format)
	return stored, nil
}
