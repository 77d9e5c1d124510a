package repository

import (
	"context"

	"github.com/evka/playforge/internal/models"
)

// GameRepository persists the game catalog.
type GameRepository interface {
	Get(ctx context.Context, id string) (*models.Game, error)
	List(ctx context.Context, filter models.GameFilter) ([]models.Game, error)
	Count(ctx context.Context, filter models.GameFilter) (int, error)
	Insert(ctx context.Context, g models.Game) error
	Update(ctx context.Context, g models.Game) error
	Delete(ctx context.Context, id string) error
	IncrementPlays(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
}

// UserRepository persists user accounts keyed by external identity.
type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByOpenID(ctx context.Context, openID string) (*models.User, error)
	Upsert(ctx context.Context, u models.User) (*models.User, error)
	TouchLastSeen(ctx context.Context, id string) error
}

// BookmarkRepository persists per-user saved games.
type BookmarkRepository interface {
	ListGameIDs(ctx context.Context, userID string) ([]string, error)
	Exists(ctx context.Context, userID, gameID string) (bool, error)
	Add(ctx context.Context, b models.Bookmark) error
	Remove(ctx context.Context, userID, gameID string) error
}
