package main

// @title WiFi CDMX API
// @version 1.0
// @description REST API over the Mexico City free WiFi access point dataset: paginated listings, borough filtering and proximity search.
// @description
// @description On first start the service imports the open-data XLSX/CSV export
// @description into its store; subsequent starts detect the populated store and
// @description skip the import.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/wifi-cdmx/wifi-api/docs"
	"github.com/wifi-cdmx/wifi-api/internal/config"
	httpDelivery "github.com/wifi-cdmx/wifi-api/internal/delivery/http"
	"github.com/wifi-cdmx/wifi-api/internal/delivery/http/handler"
	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
	"github.com/wifi-cdmx/wifi-api/internal/infrastructure/datosabiertos"
	"github.com/wifi-cdmx/wifi-api/internal/ingest"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/logger"
	"github.com/wifi-cdmx/wifi-api/internal/repository/cache"
	"github.com/wifi-cdmx/wifi-api/internal/repository/memory"
	"github.com/wifi-cdmx/wifi-api/internal/repository/postgres"
	"github.com/wifi-cdmx/wifi-api/internal/usecase"
)

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

	log.Info("Starting WiFi CDMX API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 3. Connect the WiFi point store
	var wifiRepo repository.WifiPointRepository
	switch cfg.Database.Driver {
	case "memory":
		wifiRepo = memory.NewWifiPointRepository()
		log.Info("Using in-memory WiFi point store")
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

		if err := db.Health(ctx); err != nil {
			log.Fatal("PostgreSQL health check failed", zap.Error(err))
		}

		wifiRepo = postgres.NewWifiPointRepository(db, cfg.Ingest.ChunkSize)
		log.Info("PostgreSQL connected")
	}

	// 4. Connect Redis, or fall back to the no-op cache
	cacheRepo := cache.NewNoopRepository()
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}

		cacheRepo = cache.NewCacheRepository(redisClient)
		log.Info("Redis connected")
	} else {
		log.Info("Caching disabled")
	}

	// 5. Import the dataset on first start
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer loadCancel()

	datasetClient := datosabiertos.NewClient(cfg.Ingest.DownloadTimeout, log)
	if err := datasetClient.EnsureDataset(loadCtx, cfg.Ingest.DatasetURL, cfg.Ingest.DatasetPath); err != nil {
		log.Error("Dataset is unavailable, continuing with the current store", zap.Error(err))
	} else {
		loader := ingest.NewLoader(wifiRepo, log, cfg.Ingest.ProgressEvery)
		if err := loader.LoadFromFile(loadCtx, cfg.Ingest.DatasetPath); err != nil {
			log.Error("Dataset import failed, continuing with the current store", zap.Error(err))
		}
	}

	// 6. Initialize use cases
	wifiUC := usecase.NewWifiPointUseCase(wifiRepo, cacheRepo, log, cfg.Cache.ListTTL)
	proximityUC := usecase.NewProximityUseCase(wifiRepo, cacheRepo, log, cfg.Cache.NearbyTTL)
	log.Info("Use cases initialized")

	// 7. Initialize HTTP handlers
	wifiPointHandler := handler.NewWifiPointHandler(wifiUC, proximityUC, log)
	healthHandler := handler.NewHealthHandler(wifiUC, log)

	// 8. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, wifiPointHandler, healthHandler)
	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
