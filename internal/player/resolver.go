package player

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/albapepper/nba-analytics/internal/provider"
)

// LookupRecorder is notified after every successful resolve. Persisting the
// lookup is entirely the recorder's business; its errors never fail the
// resolve.
type LookupRecorder interface {
	RecordLookup(ctx context.Context, query string, id Identity) error
}

// Resolver maps a free-text name to an Identity. When several players match,
// the first one in directory order wins.
type Resolver struct {
	directory provider.Directory
	recorder  LookupRecorder
	timeout   time.Duration
	logger    *slog.Logger
}

// NewResolver creates a Resolver. recorder may be nil. timeout bounds each
// directory call; zero means no extra bound beyond ctx.
func NewResolver(directory provider.Directory, recorder LookupRecorder, timeout time.Duration, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{directory: directory, recorder: recorder, timeout: timeout, logger: logger}
}

// Resolve returns the first directory match for name.
func (r *Resolver) Resolve(ctx context.Context, name string) (Identity, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return Identity{}, fmt.Errorf("%w: name is empty", ErrInvalidQuery)
	}

	lookupCtx, cancel := withOptionalTimeout(ctx, r.timeout)
	defer cancel()

	matches, err := r.directory.FindPlayersByFullName(lookupCtx, query)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: find player %q: %v", ErrUpstreamUnavailable, query, err)
	}
	if len(matches) == 0 {
		return Identity{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	if len(matches) > 1 {
		r.logger.Debug("Ambiguous player name, taking first match",
			"query", query, "candidates", len(matches), "chosen", matches[0].FullName)
	}

	id := Identity{
		ID:       matches[0].ID,
		FullName: matches[0].FullName,
		Team:     matches[0].TeamAbbreviation,
	}

	if r.recorder != nil {
		if err := r.recorder.RecordLookup(ctx, query, id); err != nil {
			r.logger.Warn("Failed to record player lookup", "player_id", id.ID, "error", err)
		}
	}
	return id, nil
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
