// Command api serves the emitted team snapshot over HTTP.
//
// Usage:
//
//	cbb-api
//	API_PORT=8080 CBB_OUTPUT_PATH=web/public/data/teams.json cbb-api

// @title CBB Data API
// @version 1.0.0
// @description Read-only API over the unified college basketball team snapshot. Teams, rankings, conferences and head-to-head matchups.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name CBB Data
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/cbb-data/internal/api"
	"github.com/albapepper/cbb-data/internal/cache"
	"github.com/albapepper/cbb-data/internal/config"
	"github.com/albapepper/cbb-data/internal/dataset"
	"github.com/albapepper/cbb-data/internal/logging"
	"github.com/albapepper/cbb-data/internal/maintenance"

	_ "github.com/albapepper/cbb-data/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	logging.SetDefault(logger)
	defer logger.Sync()

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load the snapshot. A missing file is not fatal: /health reports 503
	// until the ingest CLI writes one and the reload ticker picks it up.
	store := dataset.NewStore(cfg.OutputPath, logger)
	if _, err := store.Reload(); err != nil {
		logger.Warn("Snapshot not loaded", "path", cfg.OutputPath, "error", err)
	}

	// Initialize cache
	appCache := cache.New(ctx, cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start maintenance tickers (snapshot reload)
	hooks := []maintenance.ReloadHook{maintenance.PurgeCache(appCache, logger)}
	go maintenance.Start(ctx, store, maintenance.Config{ReloadInterval: cfg.SnapshotReloadInterval}, hooks, logger)

	// Create router
	router := api.NewRouter(store, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting CBB Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"snapshot", cfg.OutputPath,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
