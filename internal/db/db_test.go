package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// fakeConn behaves like a fresh database: statements touching
// player_lookups fail to prepare until the schema has been applied.
type fakeConn struct {
	schemaApplied bool
	execErr       error
	prepared      []string
}

func (c *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if c.execErr != nil {
		return pgconn.CommandTag{}, c.execErr
	}
	if strings.Contains(sql, "CREATE TABLE IF NOT EXISTS player_lookups") {
		c.schemaApplied = true
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (c *fakeConn) Prepare(_ context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	if strings.Contains(sql, "player_lookups") && !c.schemaApplied {
		return nil, errors.New(`relation "player_lookups" does not exist`)
	}
	c.prepared = append(c.prepared, name)
	return &pgconn.StatementDescription{Name: name, SQL: sql}, nil
}

func TestSetupConnOnFreshDatabase(t *testing.T) {
	conn := &fakeConn{}
	if err := setupConn(context.Background(), conn); err != nil {
		t.Fatalf("setupConn: %v", err)
	}
	want := map[string]bool{
		"health_check":          true,
		"insert_player_lookup":  true,
		"recent_player_lookups": true,
		"prune_player_lookups":  true,
	}
	if len(conn.prepared) != len(want) {
		t.Fatalf("prepared = %v", conn.prepared)
	}
	for _, name := range conn.prepared {
		if !want[name] {
			t.Errorf("unexpected statement %q", name)
		}
	}
}

func TestSetupConnSchemaFailure(t *testing.T) {
	boom := errors.New("permission denied")
	conn := &fakeConn{execErr: boom}

	err := setupConn(context.Background(), conn)
	if !errors.Is(err, boom) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if len(conn.prepared) != 0 {
		t.Errorf("statements prepared after failed schema: %v", conn.prepared)
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	for _, stmt := range []string{"CREATE TABLE IF NOT EXISTS", "CREATE INDEX IF NOT EXISTS"} {
		if !strings.Contains(Schema, stmt) {
			t.Errorf("schema missing %q", stmt)
		}
	}
	if strings.Contains(Schema, "CREATE TABLE player_lookups") {
		t.Error("schema must not use a bare CREATE TABLE")
	}
}
