// Package app assembles the services shared by cmd/api and cmd/nba from a
// loaded Config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/albapepper/nba-analytics/internal/cache"
	"github.com/albapepper/nba-analytics/internal/config"
	"github.com/albapepper/nba-analytics/internal/db"
	"github.com/albapepper/nba-analytics/internal/oracle"
	"github.com/albapepper/nba-analytics/internal/player"
	"github.com/albapepper/nba-analytics/internal/predict"
	"github.com/albapepper/nba-analytics/internal/provider/nbastats"
	"github.com/albapepper/nba-analytics/internal/store"
)

// App holds the wired components. DB and Lookups are nil unless
// DATABASE_URL is set; NewStorage fills only those two.
type App struct {
	Cache     cache.Store
	Directory *nbastats.Directory
	Games     *player.Service
	Predictor *predict.Orchestrator
	DB        *db.Pool
	Lookups   *store.Lookups

	closers []func()
}

// New connects optional infrastructure and builds every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}

	cacheStore, err := newCache(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Cache = cacheStore
	if rc, ok := cacheStore.(*cache.RedisCache); ok {
		a.closers = append(a.closers, func() { rc.Close() })
	}

	var recorder player.LookupRecorder
	if cfg.HasDatabase() {
		if err := a.connectDB(ctx, cfg, logger); err != nil {
			a.Close()
			return nil, err
		}
		recorder = a.Lookups
	}

	client := nbastats.NewClient(cfg.NBAStatsBaseURL, cfg.NBAStatsRequestsPerMin, logger)
	a.Directory = nbastats.NewDirectory(client, a.Cache, cfg.Season, cfg.DirectoryCacheTTL, logger)

	resolver := player.NewResolver(a.Directory, recorder, cfg.ProviderTimeout, logger)
	fetcher := player.NewFetcher(client, cfg.ProviderTimeout)
	a.Games = player.NewService(resolver, fetcher, cfg.Season, cfg.RecentGamesLimit, logger)

	o, err := oracle.New(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create oracle: %w", err)
	}
	a.Predictor = predict.New(o, cfg.OraclePersona, cfg.OracleTimeout, logger)
	logger.Info("Oracle initialized", "backend", o.Name())

	return a, nil
}

// NewStorage connects only the lookup store. It needs DATABASE_URL but no
// oracle or provider settings, so cfg may come from LoadWithoutOracle.
func NewStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if !cfg.HasDatabase() {
		return nil, fmt.Errorf("%w: DATABASE_URL is required", config.ErrConfiguration)
	}
	a := &App{}
	if err := a.connectDB(ctx, cfg, logger); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) connectDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	a.DB = pool
	a.Lookups = store.NewLookups(pool, 2*time.Second)
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)
	return nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// newCache returns a Redis-backed store when REDIS_URL is set, otherwise the
// in-process cache.
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Store, error) {
	if cfg.RedisURL == "" || !cfg.CacheEnabled {
		logger.Info("Cache initialized", "backend", "memory", "enabled", cfg.CacheEnabled)
		return cache.New(cfg.CacheEnabled), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid REDIS_URL: %v", config.ErrConfiguration, err)
	}
	client := redis.NewClient(opts)
	rc := cache.NewRedis(client, "nba:", logger)

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	err = backoff.RetryNotify(func() error {
		return rc.Ping(ctx)
	}, b, func(err error, wait time.Duration) {
		logger.Warn("Redis not ready, retrying", "wait", wait.Round(time.Millisecond), "error", err)
	})
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("Cache initialized", "backend", "redis", "addr", opts.Addr)
	return rc, nil
}
