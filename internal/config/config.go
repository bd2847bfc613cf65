// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/nba.
//
// The returned *Config is built once at process start and treated as
// read-only afterwards; components receive it (or the fields they need)
// explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrConfiguration marks a fatal configuration problem. The process must not
// serve traffic when Load returns it.
var ErrConfiguration = errors.New("configuration error")

// Oracle backends.
const (
	OracleGemini = "gemini"
	OracleOpenAI = "openai"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Statistics provider
	Season                 string // season token, e.g. "2025-26"
	RecentGamesLimit       int
	NBAStatsBaseURL        string
	NBAStatsRequestsPerMin int
	ProviderTimeout        time.Duration
	DirectoryCacheTTL      time.Duration

	// Prediction oracle
	OracleBackend string
	OracleAPIKey  string
	OracleModel   string
	OraclePersona string
	OracleTimeout time.Duration

	// Cache
	CacheEnabled bool
	RedisURL     string // empty = in-memory cache

	// Lookup persistence (optional)
	DatabaseURL         string
	DBPoolMinConns      int
	DBPoolMaxConns      int
	DBPoolMaxLife       time.Duration
	LookupRetentionDays int
}

// Load reads configuration from environment variables with sensible defaults.
// A missing oracle API key fails with ErrConfiguration.
func Load() (*Config, error) {
	cfg, err := LoadWithoutOracle()
	if err != nil {
		return nil, err
	}
	if err := cfg.loadOracle(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithoutOracle reads everything except the oracle settings, which are
// left empty. Commands that only touch storage use it so they run without a
// model API key.
func LoadWithoutOracle() (*Config, error) {
	limit := envInt("RECENT_GAMES_LIMIT", 5)
	if limit < 1 {
		return nil, fmt.Errorf("%w: RECENT_GAMES_LIMIT must be positive", ErrConfiguration)
	}

	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:5173",
			"https://nba-analytics-blond.vercel.app",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		Season:                 envOr("NBA_SEASON", "2025-26"),
		RecentGamesLimit:       limit,
		NBAStatsBaseURL:        envOr("NBA_STATS_BASE_URL", "https://stats.nba.com/stats"),
		NBAStatsRequestsPerMin: envInt("NBA_STATS_REQUESTS_PER_MINUTE", 30),
		ProviderTimeout:        envDuration("PROVIDER_TIMEOUT", 15*time.Second),
		DirectoryCacheTTL:      envDuration("DIRECTORY_CACHE_TTL", 24*time.Hour),

		OraclePersona: envOr("ORACLE_PERSONA", "You are an expert NBA betting analyst."),
		OracleTimeout: envDuration("ORACLE_TIMEOUT", 30*time.Second),

		CacheEnabled: envBool("CACHE_ENABLED", true),
		RedisURL:     envOr("REDIS_URL", ""),

		DatabaseURL:         envOr("DATABASE_URL", ""),
		DBPoolMinConns:      envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns:      envInt("DB_POOL_MAX_CONNS", 5),
		DBPoolMaxLife:       time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,
		LookupRetentionDays: envInt("LOOKUP_RETENTION_DAYS", 30),
	}, nil
}

// loadOracle fills the backend, key and model, requiring the key for the
// selected backend.
func (c *Config) loadOracle() error {
	backend := strings.ToLower(envOr("ORACLE_BACKEND", OracleGemini))

	var apiKey, model string
	switch backend {
	case OracleGemini:
		apiKey = envOr("GEMINI_API", envOr("GEMINI_API_KEY", ""))
		model = envOr("ORACLE_MODEL", "gemini-2.0-flash")
		if apiKey == "" {
			return fmt.Errorf("%w: GEMINI_API or GEMINI_API_KEY must be set", ErrConfiguration)
		}
	case OracleOpenAI:
		apiKey = envOr("OPENAI_API_KEY", "")
		model = envOr("ORACLE_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY must be set", ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown ORACLE_BACKEND %q", ErrConfiguration, backend)
	}

	c.OracleBackend = backend
	c.OracleAPIKey = apiKey
	c.OracleModel = model
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasDatabase reports whether lookup persistence is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go duration strings ("15s") or plain seconds ("15").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
