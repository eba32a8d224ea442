package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/medrisk-server/internal/api"
	"github.com/medrisk-server/internal/cache"
	"github.com/medrisk-server/internal/catalog"
	"github.com/medrisk-server/internal/config"
	"github.com/medrisk-server/internal/database"
	"github.com/medrisk-server/internal/engine"
	"github.com/medrisk-server/internal/feedback"
	"github.com/medrisk-server/internal/repository"
	"github.com/medrisk-server/pkg/external"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := config.NewLogger(cfg.Logging)
	logger.Infof("Starting medication risk server on %s:%d", cfg.Server.Host, cfg.Server.Port)

	eng := engine.New(catalog.Default(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := api.Deps{}

	// Assessment history (optional)
	if cfg.Database.Enabled {
		runner, err := database.NewMigrationRunner(configManager.GetDatabaseURL(), cfg.Database.MigrationsPath, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create migration runner")
		}
		if err := runner.Up(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to run migrations")
		}
		runner.Close()

		db, err := database.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		deps.Repo = repository.NewAssessmentRepository(db, logger)
	}

	// Alert-feedback store
	var fbStore feedback.Store
	switch cfg.Feedback.Backend {
	case "postgres":
		fbStore, err = feedback.NewPostgresStoreFromURL(configManager.GetDatabaseURL())
	case "sqlite", "":
		fbStore, err = feedback.NewSQLiteStore(cfg.Feedback.DBPath)
	default:
		logger.Fatalf("Unknown feedback backend %q", cfg.Feedback.Backend)
	}
	if err != nil {
		logger.WithError(err).Fatal("Failed to open feedback store")
	}
	defer fbStore.Close()
	deps.Feedback = fbStore

	// Narration collaborator (optional), with optional Redis cache
	if cfg.Narration.Enabled {
		var narrationCache *cache.NarrationCache
		if cfg.Cache.Enabled {
			narrationCache, err = cache.NewNarrationCache(cfg.Cache)
			if err != nil {
				logger.WithError(err).Fatal("Failed to connect to narration cache")
			}
			defer narrationCache.Close()
		}
		deps.Narrator = external.NewNarratorClient(cfg.Narration, narrationCache, logger)
	}

	server, err := api.NewServer(configManager, eng, deps, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create server")
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}
