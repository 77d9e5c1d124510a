package sqlite

import (
	"context"
	"database/sql"

	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
)

type bookmarkRepository struct {
	db *sql.DB
}

// NewBookmarkRepository creates a new BookmarkRepository implementation
func NewBookmarkRepository(db *sql.DB) repository.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) ListGameIDs(ctx context.Context, userID string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("bookmark_repo")
	log.Debug("listing bookmarks: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT game_id FROM bookmarks WHERE user_id = ? ORDER BY created_at DESC
`, userID)
	if err != nil {
		log.Error("failed to list bookmarks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan bookmark row: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	log.Debug("found %d bookmarks", len(ids))
	return ids, rows.Err()
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID, gameID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM bookmarks WHERE user_id = ? AND game_id = ?
`, userID, gameID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *bookmarkRepository) Add(ctx context.Context, b models.Bookmark) error {
	log := logger.FromContext(ctx).WithPrefix("bookmark_repo")
	log.Debug("adding bookmark: user_id=%s, game_id=%s", b.UserID, b.GameID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO bookmarks (id, user_id, game_id) VALUES (?, ?, ?)
ON CONFLICT(user_id, game_id) DO NOTHING
`, b.ID, b.UserID, b.GameID)
	if err != nil {
		log.Error("failed to add bookmark: %v", err)
	}
	return err
}

func (r *bookmarkRepository) Remove(ctx context.Context, userID, gameID string) error {
	log := logger.FromContext(ctx).WithPrefix("bookmark_repo")
	log.Debug("removing bookmark: user_id=%s, game_id=%s", userID, gameID)

	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE user_id = ? AND game_id = ?`, userID, gameID)
	if err != nil {
		log.Error("failed to remove bookmark: %v", err)
	}
	return err
}
