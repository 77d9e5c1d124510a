package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evka/playforge/internal/ai"
	"github.com/evka/playforge/internal/api"
	"github.com/evka/playforge/internal/config"
	"github.com/evka/playforge/internal/db"
	"github.com/evka/playforge/internal/generator"
	"github.com/evka/playforge/internal/jobs"
	"github.com/evka/playforge/internal/logger"
	"github.com/evka/playforge/internal/repository/sqlite"
	"github.com/evka/playforge/internal/seed"
	"github.com/evka/playforge/internal/services"
	"github.com/evka/playforge/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("PlayForge Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("ai_api_url=%s", cfg.AIAPIURL)
	log.Debug("ai_model=%s", cfg.AIModel)
	log.Debug("ai_timeout_seconds=%d", cfg.AITimeoutSeconds)
	log.Debug("generate_worker_count=%d", cfg.GenerateWorkerCount)
	log.Debug("generate_queue_size=%d", cfg.GenerateQueueSize)
	log.Debug("seed_dir=%s", cfg.SeedDir)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	gameRepo := sqlite.NewGameRepository(database.DB)
	userRepo := sqlite.NewUserRepository(database.DB)
	bookmarkRepo := sqlite.NewBookmarkRepository(database.DB)

	// AI provider and generator
	provider := ai.NewOpenAIProvider(cfg.AIAPIKey,
		ai.WithBaseURL(cfg.AIAPIURL),
		ai.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.AITimeoutSeconds) * time.Second}),
	)
	gen := generator.New(provider, cfg.AIModel, log.WithPrefix("generator"))

	// Services
	gameService := services.NewGameService(gameRepo, bookmarkRepo, userRepo)
	bookmarkService := services.NewBookmarkService(bookmarkRepo, gameRepo)
	userService := services.NewUserService(userRepo)
	generationService := services.NewGenerationService(gen, gameRepo)

	// Seed the catalog before accepting traffic
	if cfg.SeedDir != "" {
		loader := seed.NewLoader(cfg.SeedDir, gameRepo, log.WithPrefix("seed"))
		if err := loader.Apply(context.Background()); err != nil {
			log.Error("failed to apply seed games: %v", err)
			os.Exit(1)
		}
	}

	// Background generation queue
	generatePool := worker.NewPool(cfg.GenerateWorkerCount, cfg.GenerateQueueSize)
	tracker := jobs.NewTracker(0)
	jobQueue := jobs.NewWorkerQueue(generatePool, generationService, tracker)

	srv := &api.Server{
		DB:                database,
		GameService:       gameService,
		BookmarkService:   bookmarkService,
		UserService:       userService,
		GenerationService: generationService,
		JobQueue:          jobQueue,
	}

	ctx, cancel := context.WithCancel(context.Background())
	generatePool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	log.Debug("stopping generation pool")
	generatePool.Stop()

	log.Info("===========================================")
	log.Info("PlayForge Server Stopped")
	log.Info("===========================================")
}
