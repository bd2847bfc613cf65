// Package maintenance runs periodic background tasks as Go tickers: pruning
// old lookup rows and keeping the player directory cache warm.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Pruner deletes lookup rows older than a retention window.
type Pruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// Refresher reloads the player directory into the cache.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	PruneInterval   time.Duration // lookup row cleanup
	LookupRetention time.Duration
	RefreshInterval time.Duration // directory cache refresh
	WarmOnStart     bool
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig(retentionDays int) Config {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return Config{
		PruneInterval:   6 * time.Hour,
		LookupRetention: time.Duration(retentionDays) * 24 * time.Hour,
		RefreshInterval: 12 * time.Hour,
		WarmOnStart:     true,
	}
}

// Start launches all configured maintenance tickers. Either task source may
// be nil. Blocks until ctx is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, pruner Pruner, dir Refresher, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"prune", cfg.PruneInterval,
		"refresh", cfg.RefreshInterval)

	if dir != nil && cfg.WarmOnStart {
		refreshDirectory(ctx, dir, logger)
	}

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if pruner != nil && cfg.PruneInterval > 0 && cfg.LookupRetention > 0 {
		t := time.NewTicker(cfg.PruneInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { pruneLookups(ctx, pruner, cfg.LookupRetention, logger) })
	}

	if dir != nil && cfg.RefreshInterval > 0 {
		t := time.NewTicker(cfg.RefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { refreshDirectory(ctx, dir, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

func pruneLookups(ctx context.Context, pruner Pruner, retention time.Duration, logger *slog.Logger) {
	n, err := pruner.Prune(ctx, retention)
	if err != nil {
		logger.Warn("Cleanup: failed to prune lookups", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Cleanup: pruned old lookups", "count", n)
	}
}

func refreshDirectory(ctx context.Context, dir Refresher, logger *slog.Logger) {
	start := time.Now()
	n, err := dir.Refresh(ctx)
	dur := time.Since(start).Round(time.Millisecond)
	if err != nil {
		logger.Warn("Failed to refresh player directory", "duration", dur, "error", err)
		return
	}
	logger.Info("Refreshed player directory", "players", n, "duration", dur)
}
