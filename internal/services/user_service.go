package services

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
)

// UserService handles account logic keyed on external identity
type UserService interface {
	EnsureUser(ctx context.Context, u models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// EnsureUser upserts the account for an authenticated identity and stamps the
// last-seen time.
func (s *userService) EnsureUser(ctx context.Context, u models.User) (*models.User, error) {
	log := logger.FromContext(ctx)

	if u.OpenID == "" {
		return nil, errors.NewValidationError("openId", "must not be empty")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	user, err := s.userRepo.Upsert(ctx, u)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err := s.userRepo.TouchLastSeen(ctx, user.ID); err != nil {
		log.Warn("failed to update last seen: %v", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("user", id)
		}
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}
