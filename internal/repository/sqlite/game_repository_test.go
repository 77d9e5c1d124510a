package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
	"github.com/evka/playforge/internal/repository/sqlite"
	"github.com/evka/playforge/internal/testutil"
)

type GameRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.GameRepository
}

func (s *GameRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewGameRepository(s.db)
}

func (s *GameRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *GameRepositorySuite) insertGame(title string, format models.GameFormat) models.Game {
	g := models.Game{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     "a test game",
		Topic:           "Biology",
		Tags:            []string{"cells", "science"},
		Difficulty:      models.DifficultyMedium,
		Complexity:      models.ComplexityNormal,
		Format:          format,
		DurationMinutes: 10,
		Language:        "en",
		GameContent:     `{"version":"1.0"}`,
	}
	s.Require().NoError(s.repo.Insert(context.Background(), g))
	return g
}

func (s *GameRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	g := s.insertGame("Cell Explorer", models.FormatQuiz)

	retrieved, err := s.repo.Get(ctx, g.ID)
	s.Require().NoError(err)
	s.Assert().Equal("Cell Explorer", retrieved.Title)
	s.Assert().Equal(models.FormatQuiz, retrieved.Format)
	s.Assert().Equal([]string{"cells", "science"}, retrieved.Tags)
	s.Assert().Equal(`{"version":"1.0"}`, retrieved.GameContent)
	s.Assert().Equal(0, retrieved.PlaysCount)
}

func (s *GameRepositorySuite) TestGet_NotFound() {
	ctx := context.Background()
	game, err := s.repo.Get(ctx, "nope")
	s.Assert().Error(err)
	s.Assert().Nil(game)
}

func (s *GameRepositorySuite) TestListFiltersByFormat() {
	ctx := context.Background()
	s.insertGame("Quiz A", models.FormatQuiz)
	s.insertGame("Quiz B", models.FormatQuiz)
	s.insertGame("Memory A", models.FormatMemory)

	games, err := s.repo.List(ctx, models.GameFilter{Format: models.FormatQuiz})
	s.Require().NoError(err)
	s.Assert().Len(games, 2)
	for _, g := range games {
		s.Assert().Equal(models.FormatQuiz, g.Format)
	}

	count, err := s.repo.Count(ctx, models.GameFilter{Format: models.FormatMemory})
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *GameRepositorySuite) TestListFiltersByLanguage() {
	ctx := context.Background()
	s.insertGame("English Quiz", models.FormatQuiz)

	pt := s.insertGame("Quiz em Portugues", models.FormatQuiz)
	pt.Language = "pt"
	s.Require().NoError(s.repo.Update(ctx, pt))

	games, err := s.repo.List(ctx, models.GameFilter{Language: "pt"})
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Assert().Equal("Quiz em Portugues", games[0].Title)
}

func (s *GameRepositorySuite) TestListSearch() {
	ctx := context.Background()
	s.insertGame("Photosynthesis Quest", models.FormatQuiz)
	s.insertGame("Roman History", models.FormatFlashcards)

	games, err := s.repo.List(ctx, models.GameFilter{Search: "photo"})
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Assert().Equal("Photosynthesis Quest", games[0].Title)
}

func (s *GameRepositorySuite) TestIncrementCounters() {
	ctx := context.Background()
	g := s.insertGame("Counter Game", models.FormatPuzzle)

	s.Require().NoError(s.repo.IncrementPlays(ctx, g.ID))
	s.Require().NoError(s.repo.IncrementPlays(ctx, g.ID))
	s.Require().NoError(s.repo.IncrementLikes(ctx, g.ID))

	retrieved, err := s.repo.Get(ctx, g.ID)
	s.Require().NoError(err)
	s.Assert().Equal(2, retrieved.PlaysCount)
	s.Assert().Equal(1, retrieved.LikesCount)
}

func (s *GameRepositorySuite) TestIncrementPlays_NotFound() {
	err := s.repo.IncrementPlays(context.Background(), "missing")
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *GameRepositorySuite) TestUpdate() {
	ctx := context.Background()
	g := s.insertGame("Before", models.FormatQuiz)

	g.Title = "After"
	g.GameContent = `{"version":"1.0","updated":true}`
	s.Require().NoError(s.repo.Update(ctx, g))

	retrieved, err := s.repo.Get(ctx, g.ID)
	s.Require().NoError(err)
	s.Assert().Equal("After", retrieved.Title)
	s.Assert().Equal(g.GameContent, retrieved.GameContent)
}

func TestGameRepositorySuite(t *testing.T) {
	suite.Run(t, new(GameRepositorySuite))
}
