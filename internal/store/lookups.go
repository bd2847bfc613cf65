// Package store persists resolved player lookups in Postgres. It is only
// wired when DATABASE_URL is set.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/nba-analytics/internal/player"
)

// Querier is the subset of pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Lookup is one recorded resolve.
type Lookup struct {
	ID         uuid.UUID `json:"id"`
	Query      string    `json:"query"`
	PlayerID   int       `json:"player_id"`
	FullName   string    `json:"full_name"`
	Team       string    `json:"team,omitempty"`
	LookedUpAt time.Time `json:"looked_up_at"`
}

// Lookups records and reads player lookups.
type Lookups struct {
	db      Querier
	timeout time.Duration
	now     func() time.Time
}

// NewLookups creates a store. Each write is bounded by timeout so a slow
// database never holds up a request for long.
func NewLookups(db Querier, timeout time.Duration) *Lookups {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Lookups{db: db, timeout: timeout, now: time.Now}
}

// RecordLookup implements player.LookupRecorder.
func (s *Lookups) RecordLookup(ctx context.Context, query string, id player.Identity) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.db.Exec(ctx, "insert_player_lookup",
		uuid.New(), query, id.ID, id.FullName, id.Team, s.now().UTC())
	if err != nil {
		return fmt.Errorf("insert lookup for player %d: %w", id.ID, err)
	}
	return nil
}

// Recent returns the latest lookups, newest first.
func (s *Lookups) Recent(ctx context.Context, limit int) ([]Lookup, error) {
	rows, err := s.db.Query(ctx, "recent_player_lookups", limit)
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}
	defer rows.Close()

	var out []Lookup
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.Query, &l.PlayerID, &l.FullName, &l.Team, &l.LookedUpAt); err != nil {
			return nil, fmt.Errorf("scan lookup: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Prune deletes lookups older than retention and returns how many went.
func (s *Lookups) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx, "prune_player_lookups", s.now().Add(-retention).UTC())
	if err != nil {
		return 0, fmt.Errorf("prune lookups: %w", err)
	}
	return tag.RowsAffected(), nil
}
