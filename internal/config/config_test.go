package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("GENERATE_WORKER_COUNT", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:playforge.db", cfg.DBPath)
	assert.Equal(t, 2, cfg.GenerateWorkerCount)
	assert.Equal(t, 32, cfg.GenerateQueueSize)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GENERATE_WORKER_COUNT", "8")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 8, cfg.GenerateWorkerCount)
}

func TestEnvIntOrInvalid(t *testing.T) {
	t.Setenv("GENERATE_QUEUE_SIZE", "not-a-number")

	cfg := Load()

	assert.Equal(t, 32, cfg.GenerateQueueSize, "invalid value should fall back to default")
}
