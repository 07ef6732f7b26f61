// Package main is the entry point for the riskdesk HTTP service.
//
// The service keeps holdings and daily close prices in SQLite, computes
// per-asset and portfolio risk metrics on demand or on a cron schedule,
// and serves the latest report over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/di"
	"github.com/aristath/riskdesk/internal/server"
	"github.com/aristath/riskdesk/pkg/logger"
)

// main orchestrates startup:
// 1. Loads configuration and initializes logging
// 2. Wires all dependencies via the DI container
// 3. Starts the HTTP server and the scheduler
// 4. Waits for a shutdown signal and shuts down gracefully
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_dir", cfg.DataDir).
		Str("benchmark", cfg.Risk.Benchmark).
		Msg("Starting riskdesk")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, jobs, err := di.Wire(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close databases")
		}
	}()

	srv := server.New(server.Config{
		Log:         log,
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
		RiskService: container.RiskService,
		Exporter:    container.Exporter,
		Databases:   container.Databases(),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	container.Scheduler.Start()

	// Warm the cache so the first GET /report does not pay for a run.
	// An empty store is expected on first start.
	if cfg.ReportSchedule != "" {
		go func() {
			if err := container.Scheduler.RunNow(jobs.RiskReport); err != nil {
				log.Warn().Err(err).Msg("Initial risk report failed")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
