// Package seed loads starter games from YAML files into the catalog.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/evka/playforge/internal/gamespec"
	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository"
)

// File is the YAML shape of a seed game. The spec field holds the game
// content as JSON (or a legacy shape the loader can convert).
type File struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Topic           string   `yaml:"topic"`
	Tags            []string `yaml:"tags"`
	Difficulty      string   `yaml:"difficulty"`
	Complexity      string   `yaml:"complexity"`
	Format          string   `yaml:"format"`
	DurationMinutes int      `yaml:"durationMinutes"`
	Language        string   `yaml:"language"`
	Spec            string   `yaml:"spec"`
}

// Loader reads seed files from a directory and inserts the games that are not
// already in the catalog.
type Loader struct {
	dir   string
	games repository.GameRepository
	log   *logger.Logger
}

// NewLoader creates a seed loader for the given directory.
func NewLoader(dir string, games repository.GameRepository, log *logger.Logger) *Loader {
	return &Loader{dir: dir, games: games, log: log.WithPrefix("seed")}
}

// Apply loads every seed file and inserts missing games. A missing or empty
// directory is not an error; individual bad files are skipped with a warning.
func (l *Loader) Apply(ctx context.Context) error {
	if l.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seed dir: %w", err)
	}

	inserted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		ok, err := l.applyFile(ctx, filepath.Join(l.dir, name))
		if err != nil {
			l.log.Warn("skipping seed file %s: %v", name, err)
			continue
		}
		if ok {
			inserted++
		}
	}
	l.log.Info("seeding complete: %d games inserted", inserted)
	return nil
}

func (l *Loader) applyFile(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return false, fmt.Errorf("parse yaml: %w", err)
	}
	if f.ID == "" || f.Title == "" {
		return false, fmt.Errorf("seed needs an id and a title")
	}

	// Already present: seeds never overwrite.
	if _, err := l.games.Get(ctx, f.ID); err == nil {
		return false, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	spec, err := gamespec.Load(f.Spec, gamespec.GameInfo{
		Title:           f.Title,
		Description:     f.Description,
		Topic:           f.Topic,
		Tags:            f.Tags,
		Difficulty:      f.Difficulty,
		Complexity:      f.Complexity,
		DurationMinutes: f.DurationMinutes,
		Language:        f.Language,
	})
	if err != nil {
		return false, err
	}
	content, err := json.Marshal(spec)
	if err != nil {
		return false, fmt.Errorf("marshal spec: %w", err)
	}

	game := models.Game{
		ID:              f.ID,
		Title:           f.Title,
		Description:     f.Description,
		Topic:           f.Topic,
		Tags:            f.Tags,
		Difficulty:      models.GameDifficulty(f.Difficulty),
		Complexity:      models.GameComplexity(f.Complexity),
		Format:          models.GameFormat(f.Format),
		DurationMinutes: f.DurationMinutes,
		Language:        language(f.Language),
		GameContent:     string(content),
	}
	if err := l.games.Insert(ctx, game); err != nil {
		return false, err
	}
	l.log.Debug("seeded game %s (%s)", f.ID, f.Title)
	return true, nil
}

func language(s string) string {
	if s == "" {
		return "English"
	}
	return s
}
