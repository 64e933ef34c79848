package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/config"
	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
	"github.com/wifi-cdmx/wifi-api/internal/infrastructure/datosabiertos"
	"github.com/wifi-cdmx/wifi-api/internal/ingest"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/logger"
	"github.com/wifi-cdmx/wifi-api/internal/repository/memory"
	"github.com/wifi-cdmx/wifi-api/internal/repository/postgres"
)

// Standalone dataset importer. Runs the same idempotent import the API
// performs on startup, then exits; useful for preloading the database
// before the first deploy. Exits non-zero when the import fails.
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting WiFi dataset loader",
		zap.String("dataset_path", cfg.Ingest.DatasetPath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	// 3. Connect the WiFi point store
	var wifiRepo repository.WifiPointRepository
	switch cfg.Database.Driver {
	case "memory":
		// Nothing outlives the process; parses and validates the
		// dataset without persisting it.
		wifiRepo = memory.NewWifiPointRepository()
		log.Info("Using in-memory store, running as a dataset validation pass")
	default:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()

		wifiRepo = postgres.NewWifiPointRepository(db, cfg.Ingest.ChunkSize)
	}

	// 4. Fetch the dataset if it is not on disk yet
	datasetClient := datosabiertos.NewClient(cfg.Ingest.DownloadTimeout, log)
	if err := datasetClient.EnsureDataset(ctx, cfg.Ingest.DatasetURL, cfg.Ingest.DatasetPath); err != nil {
		log.Fatal("Dataset is unavailable", zap.Error(err))
	}

	// 5. Import
	loader := ingest.NewLoader(wifiRepo, log, cfg.Ingest.ProgressEvery)
	if err := loader.LoadFromFile(ctx, cfg.Ingest.DatasetPath); err != nil {
		log.Fatal("Dataset import failed", zap.Error(err))
	}

	total, err := wifiRepo.Count(ctx)
	if err != nil {
		log.Fatal("Failed to count loaded points", zap.Error(err))
	}

	log.Info("Import finished", zap.Int("total_points", total))
}
