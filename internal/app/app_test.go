package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/albapepper/nba-analytics/internal/cache"
	"github.com/albapepper/nba-analytics/internal/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewStorageRequiresDatabase(t *testing.T) {
	_, err := NewStorage(context.Background(), &config.Config{}, quietLogger())
	if !errors.Is(err, config.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewWithoutInfrastructure(t *testing.T) {
	cfg := &config.Config{
		Season:           "2025-26",
		RecentGamesLimit: 5,
		NBAStatsBaseURL:  "http://127.0.0.1:1",
		ProviderTimeout:  time.Second,
		OracleBackend:    config.OracleGemini,
		OracleAPIKey:     "k",
		OracleModel:      "gemini-2.0-flash",
		OracleTimeout:    time.Second,
		CacheEnabled:     true,
	}

	a, err := New(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.DB != nil || a.Lookups != nil {
		t.Error("database should stay disconnected without DATABASE_URL")
	}
	if _, ok := a.Cache.(*cache.Cache); !ok {
		t.Errorf("cache = %T, want in-memory", a.Cache)
	}
	if a.Games == nil || a.Predictor == nil || a.Directory == nil {
		t.Error("services not wired")
	}
}

func TestNewRejectsBadRedisURL(t *testing.T) {
	cfg := &config.Config{CacheEnabled: true, RedisURL: "not a url"}
	if _, err := New(context.Background(), cfg, quietLogger()); !errors.Is(err, config.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
