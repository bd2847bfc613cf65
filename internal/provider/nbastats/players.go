package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/albapepper/nba-analytics/internal/cache"
	"github.com/albapepper/nba-analytics/internal/provider"
)

// Directory resolves player names against the commonallplayers index. The
// index is downloaded once per TTL and kept in the configured cache.
type Directory struct {
	client *Client
	cache  cache.Store
	season string
	ttl    time.Duration
	logger *slog.Logger
}

// NewDirectory creates a Directory backed by client. store may be a disabled
// cache, in which case every lookup downloads the index.
func NewDirectory(client *Client, store cache.Store, season string, ttl time.Duration, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = cache.TTLDirectory
	}
	return &Directory{client: client, cache: store, season: season, ttl: ttl, logger: logger}
}

// FindPlayersByFullName returns every directory entry whose full name
// contains name, ignoring case and diacritics, in directory order.
func (d *Directory) FindPlayersByFullName(ctx context.Context, name string) ([]provider.PlayerEntry, error) {
	entries, err := d.entries(ctx)
	if err != nil {
		return nil, err
	}
	return MatchFullName(entries, name), nil
}

// MatchFullName filters entries by folded substring match on FullName.
func MatchFullName(entries []provider.PlayerEntry, name string) []provider.PlayerEntry {
	needle := foldName(name)
	if needle == "" {
		return nil
	}
	var matches []provider.PlayerEntry
	for _, e := range entries {
		if strings.Contains(foldName(e.FullName), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}

func (d *Directory) cacheKey() string {
	return "nbastats:directory:" + d.season
}

// Refresh downloads the index unconditionally and replaces the cached copy.
// It returns the number of players loaded.
func (d *Directory) Refresh(ctx context.Context) (int, error) {
	entries, err := d.download(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (d *Directory) entries(ctx context.Context) ([]provider.PlayerEntry, error) {
	if data, _, ok := d.cache.Get(ctx, d.cacheKey()); ok {
		var cached []provider.PlayerEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		d.logger.Warn("Discarding unreadable directory cache entry", "key", d.cacheKey())
	}
	return d.download(ctx)
}

func (d *Directory) download(ctx context.Context) ([]provider.PlayerEntry, error) {
	entries, err := d.client.CommonAllPlayers(ctx, d.season)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(entries); err == nil {
		d.cache.Set(ctx, d.cacheKey(), data, d.ttl)
	}
	d.logger.Info("Player directory loaded", "season", d.season, "players", len(entries))
	return entries, nil
}

// CommonAllPlayers downloads the full league player index for a season,
// including retired players.
func (c *Client) CommonAllPlayers(ctx context.Context, season string) ([]provider.PlayerEntry, error) {
	params := url.Values{
		"LeagueID":            {"00"},
		"Season":              {season},
		"IsOnlyCurrentSeason": {"0"},
	}

	resp, err := c.get(ctx, "/commonallplayers", params)
	if err != nil {
		return nil, fmt.Errorf("fetch player directory: %w", err)
	}
	set, err := resp.table("CommonAllPlayers")
	if err != nil {
		return nil, err
	}

	rows := set.rows()
	entries := make([]provider.PlayerEntry, 0, len(rows))
	for _, row := range rows {
		id, ok := provider.ExtractInt(row["PERSON_ID"])
		if !ok {
			continue
		}
		name, _ := provider.ExtractString(row["DISPLAY_FIRST_LAST"])
		if name == "" {
			continue
		}
		team, _ := provider.ExtractString(row["TEAM_ABBREVIATION"])
		entries = append(entries, provider.PlayerEntry{
			ID:               id,
			FullName:         name,
			TeamAbbreviation: team,
		})
	}
	return entries, nil
}

// foldName lower-cases s, strips diacritics and collapses whitespace so
// "Nikola  Jokić" matches "nikola jokic".
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
