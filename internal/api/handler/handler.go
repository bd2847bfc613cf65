// Package handler provides HTTP handlers for all API endpoints.
// Handlers depend on narrow interfaces so tests can stub the provider and the
// oracle; error kinds are mapped to status codes here and nowhere else.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/albapepper/nba-analytics/internal/api/respond"
	"github.com/albapepper/nba-analytics/internal/cache"
	"github.com/albapepper/nba-analytics/internal/player"
	"github.com/albapepper/nba-analytics/internal/predict"
)

// GamesService serves recent games for a player name.
type GamesService interface {
	RecentGames(ctx context.Context, name, season string) (player.GameLog, error)
}

// Predictor projects the next game from caller-supplied stats.
type Predictor interface {
	Predict(ctx context.Context, req predict.Request) (predict.Result, error)
}

// Pinger reports database reachability.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the collaborators a Handler needs. DB may be nil when lookup
// persistence is disabled.
type Deps struct {
	Games     GamesService
	Predictor Predictor
	Cache     cache.Store
	DB        Pinger
	Logger    *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	games     GamesService
	predictor Predictor
	cache     cache.Store
	db        Pinger
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		games:     d.Games,
		predictor: d.Predictor,
		cache:     d.Cache,
		db:        d.DB,
		logger:    logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":              "NBA Analytics API",
		"version":           "1.0.0",
		"status":            "running",
		"docs":              "/docs/",
		"prediction_schema": predict.SchemaVersion,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity when lookup persistence is enabled.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "disabled",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns player-directory cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeError maps an error kind to a status code and a generic message. The
// full error is logged, never sent.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classify(err)
	attrs := []any{
		"path", r.URL.Path,
		"status", status,
		"code", code,
		"error", err,
		"request_id", middleware.GetReqID(r.Context()),
	}
	var malformed *predict.MalformedError
	if errors.As(err, &malformed) {
		attrs = append(attrs, "oracle_text", malformed.Raw)
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", attrs...)
	} else {
		h.logger.Info("Request rejected", attrs...)
	}
	respond.WriteError(w, status, code, message)
}

func classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, player.ErrInvalidQuery):
		return http.StatusBadRequest, "INVALID_QUERY", "Player name is required"
	case errors.Is(err, player.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Player not found"
	case errors.Is(err, player.ErrUpstreamUnavailable):
		return http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", "Statistics provider is unavailable"
	case errors.Is(err, player.ErrNormalizationFailed):
		return http.StatusInternalServerError, "NORMALIZATION_FAILED", "Game log could not be processed"
	case errors.Is(err, predict.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", "player_name and stats are required"
	case errors.Is(err, predict.ErrOracleUnavailable):
		return http.StatusInternalServerError, "ORACLE_UNAVAILABLE", "Prediction service is unavailable"
	case errors.Is(err, predict.ErrOracleMalformedResponse):
		return http.StatusInternalServerError, "ORACLE_MALFORMED_RESPONSE", "Prediction service returned an invalid response"
	default:
		return http.StatusInternalServerError, "INTERNAL", "Internal server error"
	}
}
