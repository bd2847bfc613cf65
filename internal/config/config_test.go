package config

import (
	"errors"
	"testing"
	"time"
)

func clearOracleEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ORACLE_BACKEND", "GEMINI_API", "GEMINI_API_KEY", "OPENAI_API_KEY", "ORACLE_MODEL", "RECENT_GAMES_LIMIT"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingOracleKey(t *testing.T) {
	clearOracleEnv(t)

	_, err := Load()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoadMissingOpenAIKey(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("ORACLE_BACKEND", "openai")
	t.Setenv("GEMINI_API", "ignored")

	_, err := Load()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("ORACLE_BACKEND", "crystal-ball")
	t.Setenv("GEMINI_API", "k")

	if _, err := Load(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("GEMINI_API", "secret")
	t.Setenv("NBA_SEASON", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OracleBackend != OracleGemini {
		t.Errorf("backend = %q", cfg.OracleBackend)
	}
	if cfg.OracleAPIKey != "secret" {
		t.Errorf("api key = %q", cfg.OracleAPIKey)
	}
	if cfg.Season != "2025-26" {
		t.Errorf("season = %q", cfg.Season)
	}
	if cfg.RecentGamesLimit != 5 {
		t.Errorf("recent games limit = %d", cfg.RecentGamesLimit)
	}
	if cfg.ProviderTimeout != 15*time.Second {
		t.Errorf("provider timeout = %v", cfg.ProviderTimeout)
	}
	if len(cfg.CORSAllowOrigins) != 2 {
		t.Errorf("cors origins = %v", cfg.CORSAllowOrigins)
	}
	if cfg.HasDatabase() {
		t.Error("database should be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("ORACLE_BACKEND", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ORACLE_TIMEOUT", "5")
	t.Setenv("PROVIDER_TIMEOUT", "2500ms")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RECENT_GAMES_LIMIT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OracleBackend != OracleOpenAI || cfg.OracleModel != "gpt-4o-mini" {
		t.Errorf("backend/model = %q/%q", cfg.OracleBackend, cfg.OracleModel)
	}
	if cfg.OracleTimeout != 5*time.Second {
		t.Errorf("oracle timeout = %v", cfg.OracleTimeout)
	}
	if cfg.ProviderTimeout != 2500*time.Millisecond {
		t.Errorf("provider timeout = %v", cfg.ProviderTimeout)
	}
	if got := cfg.CORSAllowOrigins; len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("cors origins = %v", got)
	}
	if cfg.RecentGamesLimit != 10 {
		t.Errorf("recent games limit = %d", cfg.RecentGamesLimit)
	}
}

func TestLoadRejectsNonPositiveLimit(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("GEMINI_API", "k")
	t.Setenv("RECENT_GAMES_LIMIT", "0")

	if _, err := Load(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoadWithoutOracleNeedsNoKey(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("ORACLE_BACKEND", "crystal-ball")
	t.Setenv("DATABASE_URL", "postgres://localhost/nba")
	t.Setenv("LOOKUP_RETENTION_DAYS", "7")

	cfg, err := LoadWithoutOracle()
	if err != nil {
		t.Fatalf("LoadWithoutOracle: %v", err)
	}
	if !cfg.HasDatabase() || cfg.LookupRetentionDays != 7 {
		t.Errorf("database settings = %q/%d", cfg.DatabaseURL, cfg.LookupRetentionDays)
	}
	if cfg.OracleBackend != "" || cfg.OracleAPIKey != "" {
		t.Errorf("oracle settings should be empty, got %q/%q", cfg.OracleBackend, cfg.OracleAPIKey)
	}
}
