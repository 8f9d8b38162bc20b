package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/medguide-server/internal/api"
	"github.com/medguide-server/internal/config"
	"github.com/medguide-server/internal/domain"
	"github.com/medguide-server/internal/history"
	"github.com/medguide-server/internal/rules"
	"github.com/medguide-server/internal/service"
	"github.com/medguide-server/pkg/extract"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := config.NewLogger(&cfg.Logging)
	logger.Infof("Starting MedGuide server on %s:%d", cfg.Server.Host, cfg.Server.Port)

	// Load and validate the clinical rule catalog
	catalog, err := rules.NewCatalog()
	if err != nil {
		log.Fatalf("Failed to load rule catalog: %v", err)
	}
	logger.WithField("rule_count", catalog.Size()).Info("Loaded clinical rule catalog")

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the analysis history store
	store, err := newHistoryStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	// Wire the analysis pipeline
	engine := service.NewSafetyEngine(logger, catalog)
	extractor := extract.NewClient(cfg.Extractor, logger)
	analysis, err := service.NewAnalysisService(logger, extractor, engine, store, cfg.Cache.MaxEntries)
	if err != nil {
		log.Fatalf("Failed to create analysis service: %v", err)
	}

	// Create server
	server := api.NewServer(configManager, analysis, logger)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}

	logger.Info("Server stopped")
}

// newHistoryStore opens the configured history backend.
func newHistoryStore(ctx context.Context, cfg *domain.Config) (history.Store, error) {
	switch cfg.History.Backend {
	case "postgres":
		return history.NewPostgresStore(ctx, &cfg.Database)
	case "sqlite":
		return history.NewSQLiteStore(cfg.History.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown history backend: %s", cfg.History.Backend)
	}
}
