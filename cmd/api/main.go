// Command api is the NBA Analytics API server.
//
// Usage:
//
//	nba-api
//	API_PORT=8080 ORACLE_BACKEND=openai nba-api

// @title NBA Analytics API
// @version 1.0.0
// @description Recent game logs for NBA players and model-generated next-game projections.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name NBA Analytics
// @license.name MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/nba-analytics/internal/api"
	"github.com/albapepper/nba-analytics/internal/api/handler"
	"github.com/albapepper/nba-analytics/internal/app"
	"github.com/albapepper/nba-analytics/internal/config"
	"github.com/albapepper/nba-analytics/internal/maintenance"

	_ "github.com/albapepper/nba-analytics/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(h)
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	// Background tasks: directory warm-up/refresh and lookup pruning
	mcfg := maintenance.DefaultConfig(cfg.LookupRetentionDays)
	if a.Lookups != nil {
		go maintenance.Start(ctx, a.Lookups, a.Directory, mcfg, logger)
	} else {
		go maintenance.Start(ctx, nil, a.Directory, mcfg, logger)
	}

	deps := handler.Deps{
		Games:     a.Games,
		Predictor: a.Predictor,
		Cache:     a.Cache,
		Logger:    logger,
	}
	if a.DB != nil {
		deps.DB = a.DB
	}
	router := api.NewRouter(deps, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.ProviderTimeout*2 + cfg.OracleTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting NBA Analytics API",
			"addr", addr,
			"environment", cfg.Environment,
			"season", cfg.Season,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			cancel()
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
