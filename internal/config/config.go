package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	AIAPIURL            string
	AIAPIKey            string
	AIModel             string
	AITimeoutSeconds    int
	GenerateWorkerCount int
	GenerateQueueSize   int
	SeedDir             string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:playforge.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		AIAPIURL:            envOr("AI_API_URL", "https://api.openai.com/v1"),
		AIAPIKey:            envOr("AI_API_KEY", ""),
		AIModel:             envOr("AI_MODEL", "gpt-4o"),
		AITimeoutSeconds:    envIntOr("AI_TIMEOUT_SECONDS", 120),
		GenerateWorkerCount: envIntOr("GENERATE_WORKER_COUNT", 2),
		GenerateQueueSize:   envIntOr("GENERATE_QUEUE_SIZE", 32),
		SeedDir:             envOr("SEED_DIR", ""),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
