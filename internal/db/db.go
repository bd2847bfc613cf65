// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/nba-analytics/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool. The initial ping is
// retried with exponential backoff so the API can start alongside Postgres.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Schema first, then prepared statements, on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return setupConn(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	err = backoff.RetryNotify(func() error {
		return pool.Ping(ctx)
	}, b, func(err error, wait time.Duration) {
		logger.Warn("Database not ready, retrying", "wait", wait.Round(time.Millisecond), "error", err)
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Schema creates the tables the lookup recorder writes to. It is sent as one
// simple-protocol batch, so it runs in an implicit transaction and the
// advisory lock serializes concurrent connections creating it.
const Schema = `
SELECT pg_advisory_xact_lock(7340021);
CREATE TABLE IF NOT EXISTS player_lookups (
	id           UUID PRIMARY KEY,
	query        TEXT NOT NULL,
	player_id    INTEGER NOT NULL,
	full_name    TEXT NOT NULL,
	team         TEXT NOT NULL DEFAULT '',
	looked_up_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS player_lookups_player_idx ON player_lookups (player_id);
CREATE INDEX IF NOT EXISTS player_lookups_time_idx ON player_lookups (looked_up_at);
`

// connSetup is the part of *pgx.Conn used while initializing a connection.
type connSetup interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error)
}

// setupConn applies Schema and then prepares statements. The statements
// reference player_lookups, so the order matters on a fresh database.
func setupConn(ctx context.Context, conn connSetup) error {
	if _, err := conn.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return registerPreparedStatements(ctx, conn)
}

// registerPreparedStatements registers all statements the API and CLI use.
// Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn connSetup) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Lookups
		"insert_player_lookup":  "INSERT INTO player_lookups (id, query, player_id, full_name, team, looked_up_at) VALUES ($1, $2, $3, $4, $5, $6)",
		"recent_player_lookups": "SELECT id, query, player_id, full_name, team, looked_up_at FROM player_lookups ORDER BY looked_up_at DESC LIMIT $1",
		"prune_player_lookups":  "DELETE FROM player_lookups WHERE looked_up_at < $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
