package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
	"github.com/evka/playforge/internal/repository/sqlite"
	"github.com/evka/playforge/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUpsertCreatesUser() {
	ctx := context.Background()

	u, err := s.repo.Upsert(ctx, models.User{OpenID: "open-1", Name: "Ana", Email: "ana@example.com"})
	s.Require().NoError(err)
	s.Assert().NotEmpty(u.ID)
	s.Assert().Equal("open-1", u.OpenID)
	s.Assert().Equal(models.RoleUser, u.Role)
	s.Assert().Nil(u.LastSeenAt)
}

func (s *UserRepositorySuite) TestUpsertRefreshesProfile() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, models.User{OpenID: "open-1", Name: "Ana"})
	s.Require().NoError(err)

	second, err := s.repo.Upsert(ctx, models.User{OpenID: "open-1", Name: "Ana Maria", Email: "ana@example.com"})
	s.Require().NoError(err)

	s.Assert().Equal(first.ID, second.ID, "upsert must not create a second row for the same identity")
	s.Assert().Equal("Ana Maria", second.Name)
	s.Assert().Equal("ana@example.com", second.Email)
}

func (s *UserRepositorySuite) TestGetByOpenIDMiss() {
	_, err := s.repo.GetByOpenID(context.Background(), "missing")
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *UserRepositorySuite) TestTouchLastSeen() {
	ctx := context.Background()

	u, err := s.repo.Upsert(ctx, models.User{OpenID: "open-1", Name: "Ana"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.TouchLastSeen(ctx, u.ID))

	seen, err := s.repo.Get(ctx, u.ID)
	s.Require().NoError(err)
	s.Assert().NotNil(seen.LastSeenAt)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
