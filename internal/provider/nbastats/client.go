// Package nbastats provides the stats.nba.com client behind the player
// directory and game-log capabilities.
//
// stats.nba.com answers every endpoint with a "resultSets" envelope: named
// tables of column headers plus positional rows. It rejects requests that do
// not look like they come from nba.com, so browser-like headers are always
// sent. Rate limiting is handled via a token bucket limiter.
package nbastats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public stats API root.
const DefaultBaseURL = "https://stats.nba.com/stats"

// Client is the shared HTTP client for all stats.nba.com endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a stats.nba.com HTTP client with rate limiting.
// The per-request deadline comes from the caller's context.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 2),
		logger:     logger,
	}
}

// resultSet is one named table inside a stats.nba.com response.
type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// resultSetsResponse is the common stats.nba.com response wrapper.
type resultSetsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

// table returns the named result set, or the first one when name is empty.
func (r *resultSetsResponse) table(name string) (*resultSet, error) {
	for i := range r.ResultSets {
		if name == "" || r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("result set %q not found in %s response", name, r.Resource)
}

// rows zips headers with each positional row, preserving row order.
func (s *resultSet) rows() []map[string]any {
	out := make([]map[string]any, 0, len(s.RowSet))
	for _, row := range s.RowSet {
		m := make(map[string]any, len(s.Headers))
		for i, h := range s.Headers {
			if i < len(row) {
				m[h] = row[i]
			} else {
				m[h] = nil
			}
		}
		out = append(out, m)
	}
	return out
}

// get performs a rate-limited GET request to a stats.nba.com endpoint.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*resultSetsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setBrowserHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	c.logger.Debug("stats.nba.com request",
		"path", path, "status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats.nba.com %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var result resultSetsResponse
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
