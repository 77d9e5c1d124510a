package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/evka/playforge/internal/errors"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/testutil/mocks"
)

func TestEnsureUserUpsertsAndTouchesLastSeen(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.OpenID == "open-1" && u.Role == models.RoleUser
	})).Return(&models.User{ID: "u1", OpenID: "open-1", Name: "Ana"}, nil)
	userRepo.On("TouchLastSeen", mock.Anything, "u1").Return(nil)

	user, err := svc.EnsureUser(context.Background(), models.User{OpenID: "open-1", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	userRepo.AssertExpectations(t)
}

func TestEnsureUserRequiresOpenID(t *testing.T) {
	svc := NewUserService(new(mocks.MockUserRepository))

	_, err := svc.EnsureUser(context.Background(), models.User{Name: "Ana"})

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestEnsureUserSurvivesLastSeenFailure(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("Upsert", mock.Anything, mock.Anything).
		Return(&models.User{ID: "u1", OpenID: "open-1"}, nil)
	userRepo.On("TouchLastSeen", mock.Anything, "u1").Return(sql.ErrConnDone)

	user, err := svc.EnsureUser(context.Background(), models.User{OpenID: "open-1"})
	require.NoError(t, err, "a failed last-seen stamp must not block sign-in")
	assert.Equal(t, "u1", user.ID)
}

func TestGetUserNotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("Get", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

	_, err := svc.GetUser(context.Background(), "missing")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}
