package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, open_id, name, email, avatar_url, role, created_at, updated_at, last_seen_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var lastSeen sql.NullTime
	err := row.Scan(&u.ID, &u.OpenID, &u.Name, &u.Email, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt, &lastSeen)
	if err != nil {
		return nil, err
	}
	if lastSeen.Valid {
		u.LastSeenAt = &lastSeen.Time
	}
	return &u, nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%s", id)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to get user: %v", err)
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by open_id=%s", openID)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE open_id = ?`, openID))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to get user by open_id: %v", err)
		}
		return nil, err
	}
	return u, nil
}

// Upsert creates the user on first sign-in and refreshes profile fields on
// subsequent ones, keyed by the external identity.
func (r *userRepository) Upsert(ctx context.Context, u models.User) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: open_id=%s", u.OpenID)

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, open_id, name, email, avatar_url, role)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(open_id) DO UPDATE SET
    name = excluded.name,
    email = excluded.email,
    avatar_url = excluded.avatar_url,
    updated_at = CURRENT_TIMESTAMP
`, u.ID, u.OpenID, u.Name, u.Email, u.AvatarURL, u.Role)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	return r.GetByOpenID(ctx, u.OpenID)
}

func (r *userRepository) TouchLastSeen(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_seen_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to touch last_seen_at: %v", err)
	}
	return err
}
