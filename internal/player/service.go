package player

import (
	"context"
	"log/slog"
)

// Service runs the recent-games flow: resolve → fetch → normalize → truncate.
type Service struct {
	resolver *Resolver
	fetcher  *Fetcher
	season   string
	limit    int
	logger   *slog.Logger
}

// NewService wires the flow. season is the default season token; limit is the
// number of most recent valid games returned.
func NewService(resolver *Resolver, fetcher *Fetcher, season string, limit int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if limit < 1 {
		limit = 5
	}
	return &Service{resolver: resolver, fetcher: fetcher, season: season, limit: limit, logger: logger}
}

// RecentGames resolves name and returns its most recent valid games for
// season (the default season when empty), most recent first.
func (s *Service) RecentGames(ctx context.Context, name, season string) (GameLog, error) {
	if season == "" {
		season = s.season
	}

	id, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return GameLog{}, err
	}

	raws, err := s.fetcher.Fetch(ctx, id.ID, season)
	if err != nil {
		return GameLog{}, err
	}

	games, err := NormalizeLog(raws, s.logger.With("player_id", id.ID, "season", season))
	if err != nil {
		return GameLog{}, err
	}
	if len(games) > s.limit {
		games = games[:s.limit]
	}

	s.logger.Info("Recent games served",
		"player_id", id.ID, "season", season,
		"raw", len(raws), "returned", len(games))
	return GameLog{Player: id, Season: season, Games: games}, nil
}
