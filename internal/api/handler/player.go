package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/nba-analytics/internal/api/respond"
	"github.com/albapepper/nba-analytics/internal/cache"
	"github.com/albapepper/nba-analytics/internal/player"
)

// Fallbacks for profile fields the player directory does not carry.
const (
	defaultTeam     = "NBA"
	defaultPosition = "Player"
)

// PlayerResponse is the GET /player/{name} payload.
type PlayerResponse struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Team        string              `json:"team"`
	Position    string              `json:"position"`
	Season      string              `json:"season"`
	RecentGames []player.GameRecord `json:"recentGames"`
}

// GetPlayer returns a player's identity and most recent games.
// The game log is fetched fresh on every call; the weak ETag only lets
// clients skip the body when nothing changed.
// @Summary Get player recent games
// @Description Resolves a player by name and returns the most recent valid games of the season, most recent first.
// @Tags players
// @Produce json
// @Param name path string true "Player name (full or partial)"
// @Param season query string false "Season token, e.g. 2025-26"
// @Success 200 {object} handler.PlayerResponse
// @Success 304 "Not modified"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /player/{name} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_QUERY", "Player name is not a valid path segment")
		return
	}
	season := strings.TrimSpace(r.URL.Query().Get("season"))

	log, err := h.games.RecentGames(r.Context(), name, season)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := PlayerResponse{
		ID:          log.Player.ID,
		Name:        log.Player.FullName,
		Team:        log.Player.Team,
		Position:    defaultPosition,
		Season:      log.Season,
		RecentGames: log.Games,
	}
	if resp.Team == "" {
		resp.Team = defaultTeam
	}
	if resp.RecentGames == nil {
		resp.RecentGames = []player.GameRecord{}
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	etag := cache.ComputeETag(body)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, body, etag)
}

// pathParam returns a decoded route parameter. chi matches on RawPath when the
// client's escaping differs from Go's (e.g. a literal apostrophe next to
// %20), and the parameter is then still percent-encoded.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}
