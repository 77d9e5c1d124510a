package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/models"
	"github.com/evka/playforge/internal/repository/sqlite"
	"github.com/evka/playforge/internal/testutil"
)

const seedYAML = `id: seed-fractions
title: Fraction Frenzy
description: A starter quiz about fractions
topic: Fractions
tags: [math, fractions]
difficulty: Easy
complexity: Basic
format: Quiz
durationMinutes: 5
spec: |
  {
    "questions": [
      {
        "question": "What is 1/2 + 1/2?",
        "options": ["1", "2"],
        "correctAnswer": 0
      }
    ]
  }
`

func writeSeed(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestApplyInsertsSeedGames(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	games := sqlite.NewGameRepository(db)

	dir := t.TempDir()
	writeSeed(t, dir, "fractions.yaml", seedYAML)
	writeSeed(t, dir, "notes.txt", "not a seed")

	l := NewLoader(dir, games, logger.New(logger.WithLevel(logger.ERROR)))
	require.NoError(t, l.Apply(context.Background()))

	g, err := games.Get(context.Background(), "seed-fractions")
	require.NoError(t, err)
	assert.Equal(t, "Fraction Frenzy", g.Title)
	assert.Equal(t, []string{"math", "fractions"}, g.Tags)
	assert.Contains(t, g.GameContent, `"version":"1.0"`, "legacy spec is converted before storing")
}

func TestApplyIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	games := sqlite.NewGameRepository(db)

	dir := t.TempDir()
	writeSeed(t, dir, "fractions.yaml", seedYAML)

	l := NewLoader(dir, games, logger.New(logger.WithLevel(logger.ERROR)))
	require.NoError(t, l.Apply(context.Background()))
	require.NoError(t, l.Apply(context.Background()))

	list, err := games.List(context.Background(), models.GameFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApplySkipsBadFiles(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	games := sqlite.NewGameRepository(db)

	dir := t.TempDir()
	writeSeed(t, dir, "broken.yaml", "id: [unclosed")
	writeSeed(t, dir, "untitled.yaml", "id: no-title")
	writeSeed(t, dir, "fractions.yaml", seedYAML)

	l := NewLoader(dir, games, logger.New(logger.WithLevel(logger.ERROR)))
	require.NoError(t, l.Apply(context.Background()))

	list, err := games.List(context.Background(), models.GameFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApplyMissingDirIsNoop(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	games := sqlite.NewGameRepository(db)

	l := NewLoader(filepath.Join(t.TempDir(), "nope"), games, logger.New(logger.WithLevel(logger.ERROR)))
	assert.NoError(t, l.Apply(context.Background()))

	l = NewLoader("", games, logger.New(logger.WithLevel(logger.ERROR)))
	assert.NoError(t, l.Apply(context.Background()))
}
