package player

import (
	"context"
	"fmt"
	"time"

	"github.com/albapepper/nba-analytics/internal/provider"
)

// Fetcher retrieves raw game logs. One attempt per call, no caching.
type Fetcher struct {
	source  provider.GameLogSource
	timeout time.Duration
}

// NewFetcher creates a Fetcher whose provider calls are bounded by timeout.
func NewFetcher(source provider.GameLogSource, timeout time.Duration) *Fetcher {
	return &Fetcher{source: source, timeout: timeout}
}

// Fetch returns the provider's rows for playerID and season in provider
// order. Any provider error, including a timeout, is ErrUpstreamUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, playerID int, season string) ([]provider.RawGameRecord, error) {
	ctx, cancel := withOptionalTimeout(ctx, f.timeout)
	defer cancel()

	rows, err := f.source.PlayerGameLog(ctx, playerID, season)
	if err != nil {
		return nil, fmt.Errorf("%w: game log for player %d season %s: %v", ErrUpstreamUnavailable, playerID, season, err)
	}
	return rows, nil
}
