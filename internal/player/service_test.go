package player

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/albapepper/nba-analytics/internal/provider"
)

type stubDirectory struct {
	entries []provider.PlayerEntry
	err     error
	queries []string
}

func (d *stubDirectory) FindPlayersByFullName(_ context.Context, name string) ([]provider.PlayerEntry, error) {
	d.queries = append(d.queries, name)
	return d.entries, d.err
}

type stubGameLog struct {
	rows   []provider.RawGameRecord
	err    error
	block  bool
	calls  int
	season string
	player int
}

func (g *stubGameLog) PlayerGameLog(ctx context.Context, playerID int, season string) ([]provider.RawGameRecord, error) {
	g.calls++
	g.player, g.season = playerID, season
	if g.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return g.rows, g.err
}

type stubRecorder struct {
	got []Identity
	err error
}

func (r *stubRecorder) RecordLookup(_ context.Context, _ string, id Identity) error {
	r.got = append(r.got, id)
	return r.err
}

func TestResolveFirstMatchVerbatim(t *testing.T) {
	dir := &stubDirectory{entries: []provider.PlayerEntry{
		{ID: 1631114, FullName: "Jalen Williams", TeamAbbreviation: "OKC"},
		{ID: 1631119, FullName: "Jaylin Williams", TeamAbbreviation: "OKC"},
	}}
	rec := &stubRecorder{err: errors.New("db down")}
	r := NewResolver(dir, rec, 0, nil)

	id, err := r.Resolve(context.Background(), "  Williams ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.ID != 1631114 || id.FullName != "Jalen Williams" || id.Team != "OKC" {
		t.Fatalf("unexpected identity %+v", id)
	}
	if len(dir.queries) != 1 || dir.queries[0] != "Williams" {
		t.Errorf("directory queried with %v", dir.queries)
	}
	if len(rec.got) != 1 || rec.got[0].ID != 1631114 {
		t.Errorf("recorder not notified: %+v", rec.got)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		dir  *stubDirectory
		q    string
		want error
	}{
		{"empty query", &stubDirectory{}, "   ", ErrInvalidQuery},
		{"no matches", &stubDirectory{}, "Nobody", ErrNotFound},
		{"directory failure", &stubDirectory{err: errors.New("boom")}, "Anyone", ErrUpstreamUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &stubRecorder{}
			_, err := NewResolver(tt.dir, rec, 0, nil).Resolve(context.Background(), tt.q)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if len(rec.got) != 0 {
				t.Error("recorder must only run after a successful resolve")
			}
		})
	}
}

func TestFetcherTimeoutIsUpstreamUnavailable(t *testing.T) {
	src := &stubGameLog{block: true}
	f := NewFetcher(src, 20*time.Millisecond)

	_, err := f.Fetch(context.Background(), 1, "2025-26")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if src.calls != 1 {
		t.Errorf("expected a single attempt, got %d", src.calls)
	}
}

func newTestService(rows []provider.RawGameRecord, limit int) (*Service, *stubGameLog) {
	dir := &stubDirectory{entries: []provider.PlayerEntry{{ID: 201939, FullName: "Stephen Curry", TeamAbbreviation: "GSW"}}}
	src := &stubGameLog{rows: rows}
	svc := NewService(NewResolver(dir, nil, 0, nil), NewFetcher(src, time.Second), "2025-26", limit, nil)
	return svc, src
}

func gameRows(n int) []provider.RawGameRecord {
	rows := make([]provider.RawGameRecord, n)
	for i := range rows {
		raw := sampleRaw()
		raw["GAME_DATE"] = fmt.Sprintf("game-%02d", i)
		raw["PTS"] = strconv.Itoa(20 + i)
		rows[i] = raw
	}
	return rows
}

func TestRecentGamesTruncatesInOrder(t *testing.T) {
	svc, src := newTestService(gameRows(8), 5)

	log, err := svc.RecentGames(context.Background(), "Stephen Curry", "")
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if src.season != "2025-26" || src.player != 201939 {
		t.Errorf("fetched player %d season %q", src.player, src.season)
	}
	if len(log.Games) != 5 {
		t.Fatalf("got %d games, want 5", len(log.Games))
	}
	for i, g := range log.Games {
		if want := fmt.Sprintf("game-%02d", i); g.GameDate != want {
			t.Errorf("games[%d] = %s, want %s", i, g.GameDate, want)
		}
	}
}

func TestRecentGamesTruncatesAfterSkippingInvalid(t *testing.T) {
	rows := gameRows(7)
	rows[1]["PTS"] = "bad"
	svc, _ := newTestService(rows, 5)

	log, err := svc.RecentGames(context.Background(), "Stephen Curry", "2024-25")
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if log.Season != "2024-25" {
		t.Errorf("season = %q", log.Season)
	}
	want := []string{"game-00", "game-02", "game-03", "game-04", "game-05"}
	if len(log.Games) != len(want) {
		t.Fatalf("got %d games", len(log.Games))
	}
	for i, g := range log.Games {
		if g.GameDate != want[i] {
			t.Errorf("games[%d] = %s, want %s", i, g.GameDate, want[i])
		}
	}
}

func TestRecentGamesShortLog(t *testing.T) {
	svc, _ := newTestService(gameRows(2), 5)
	log, err := svc.RecentGames(context.Background(), "Stephen Curry", "")
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(log.Games) != 2 {
		t.Fatalf("got %d games, want 2", len(log.Games))
	}
}

func TestRecentGamesUpstreamFailure(t *testing.T) {
	svc, src := newTestService(nil, 5)
	src.err = errors.New("connection reset")

	_, err := svc.RecentGames(context.Background(), "Stephen Curry", "")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
