package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const gameColumns = `id, title, description, topic, tags, difficulty, complexity, format,
       duration_minutes, language, thumbnail_url, likes_count, plays_count, created_by_id,
       game_content, created_at, updated_at`

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

func scanGame(row interface{ Scan(...any) error }) (*models.Game, error) {
	var g models.Game
	var tags string
	var createdBy sql.NullString
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Topic, &tags, &g.Difficulty, &g.Complexity, &g.Format,
		&g.DurationMinutes, &g.Language, &g.ThumbnailURL, &g.LikesCount, &g.PlaysCount, &createdBy,
		&g.GameContent, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.CreatedByID = createdBy.String
	if err := json.Unmarshal([]byte(tags), &g.Tags); err != nil {
		g.Tags = nil
	}
	return &g, nil
}

func (r *gameRepository) Get(ctx context.Context, id string) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting game: id=%s", id)

	g, err := scanGame(r.db.QueryRowContext(ctx, `
SELECT `+gameColumns+`
FROM games
WHERE id = ?
`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("game not found: id=%s", id)
		} else {
			log.Error("failed to get game: %v", err)
		}
		return nil, err
	}
	log.Debug("game found: title=%s, format=%s", g.Title, g.Format)
	return g, nil
}

func applyGameFilter(query squirrel.SelectBuilder, filter models.GameFilter) squirrel.SelectBuilder {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"title": like},
			squirrel.Like{"description": like},
			squirrel.Like{"topic": like},
		})
	}
	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"topic": filter.Topic})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.Complexity != "" {
		query = query.Where(squirrel.Eq{"complexity": filter.Complexity})
	}
	if filter.Format != "" {
		query = query.Where(squirrel.Eq{"format": filter.Format})
	}
	if filter.Language != "" {
		query = query.Where(squirrel.Eq{"language": filter.Language})
	}
	if filter.CreatedBy != "" {
		query = query.Where(squirrel.Eq{"created_by_id": filter.CreatedBy})
	}
	return query
}

func (r *gameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games with filter: search=%s, topic=%s, format=%s, sort=%s",
		filter.Search, filter.Topic, filter.Format, filter.SortBy)

	query := sqlBuilder.Select(
		"id", "title", "description", "topic", "tags", "difficulty", "complexity", "format",
		"duration_minutes", "language", "thumbnail_url", "likes_count", "plays_count", "created_by_id",
		"game_content", "created_at", "updated_at",
	).From("games")

	query = applyGameFilter(query, filter)

	// Safe ORDER BY with validation
	switch filter.SortBy {
	case "popular":
		query = query.OrderBy("plays_count DESC", "created_at DESC")
	case "liked":
		query = query.OrderBy("likes_count DESC", "created_at DESC")
	default:
		query = query.OrderBy("created_at DESC")
	}

	// Pagination
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	defer rows.Close()
	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		games = append(games, *g)
	}
	log.Debug("found %d games", len(games))
	return games, rows.Err()
}

func (r *gameRepository) Count(ctx context.Context, filter models.GameFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	query := applyGameFilter(sqlBuilder.Select("COUNT(*)").From("games"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *gameRepository) Insert(ctx context.Context, g models.Game) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("inserting game: id=%s, title=%s", g.ID, g.Title)

	tags, err := json.Marshal(g.Tags)
	if err != nil {
		return err
	}
	var createdBy any
	if g.CreatedByID != "" {
		createdBy = g.CreatedByID
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO games (
    id, title, description, topic, tags, difficulty, complexity, format,
    duration_minutes, language, thumbnail_url, created_by_id, game_content
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, g.ID, g.Title, g.Description, g.Topic, string(tags), g.Difficulty, g.Complexity, g.Format,
		g.DurationMinutes, g.Language, g.ThumbnailURL, createdBy, g.GameContent)
	if err != nil {
		log.Error("failed to insert game: %v", err)
	}
	return err
}

func (r *gameRepository) Update(ctx context.Context, g models.Game) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("updating game: id=%s", g.ID)

	tags, err := json.Marshal(g.Tags)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE games
SET title = ?, description = ?, topic = ?, tags = ?, difficulty = ?, complexity = ?, format = ?,
    duration_minutes = ?, language = ?, thumbnail_url = ?, game_content = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, g.Title, g.Description, g.Topic, string(tags), g.Difficulty, g.Complexity, g.Format,
		g.DurationMinutes, g.Language, g.ThumbnailURL, g.GameContent, g.ID)
	if err != nil {
		log.Error("failed to update game: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("deleting game: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete game: %v", err)
	}
	return err
}

func (r *gameRepository) IncrementPlays(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("incrementing plays: id=%s", id)

	res, err := r.db.ExecContext(ctx, `UPDATE games SET plays_count = plays_count + 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to increment plays: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *gameRepository) IncrementLikes(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("incrementing likes: id=%s", id)

	res, err := r.db.ExecContext(ctx, `UPDATE games SET likes_count = likes_count + 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to increment likes: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
