package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/nba-analytics/internal/player"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls []execCall
	tag   string
	err   error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag(f.tag), f.err
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func TestRecordLookup(t *testing.T) {
	db := &fakeDB{tag: "INSERT 0 1"}
	s := NewLookups(db, time.Second)
	fixed := time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	err := s.RecordLookup(context.Background(), "curry", player.Identity{ID: 201939, FullName: "Stephen Curry", Team: "GSW"})
	if err != nil {
		t.Fatalf("RecordLookup: %v", err)
	}
	if len(db.calls) != 1 {
		t.Fatalf("exec calls = %d", len(db.calls))
	}
	c := db.calls[0]
	if c.sql != "insert_player_lookup" {
		t.Errorf("statement = %q", c.sql)
	}
	if _, ok := c.args[0].(uuid.UUID); !ok {
		t.Errorf("first arg should be a uuid, got %T", c.args[0])
	}
	if c.args[1] != "curry" || c.args[2] != 201939 || c.args[3] != "Stephen Curry" || c.args[4] != "GSW" {
		t.Errorf("args = %v", c.args[1:5])
	}
	if c.args[5] != fixed {
		t.Errorf("timestamp = %v", c.args[5])
	}
}

func TestRecordLookupError(t *testing.T) {
	boom := errors.New("connection refused")
	s := NewLookups(&fakeDB{err: boom}, 0)

	err := s.RecordLookup(context.Background(), "x", player.Identity{ID: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestPrune(t *testing.T) {
	db := &fakeDB{tag: "DELETE 3"}
	s := NewLookups(db, time.Second)
	fixed := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	n, err := s.Prune(context.Background(), 48*time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 3 {
		t.Errorf("rows = %d, want 3", n)
	}
	if got := db.calls[0].args[0]; got != fixed.Add(-48*time.Hour) {
		t.Errorf("cutoff = %v", got)
	}
}
