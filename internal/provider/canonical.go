// Package provider defines the shapes the statistics provider hands to the
// core. Provider clients output these; the player package normalizes them.
//
// Adding a new provider means implementing Directory and GameLogSource. The
// normalizer and the API never change.
package provider

import "context"

// PlayerEntry is one row of the provider's player directory.
type PlayerEntry struct {
	ID               int    `json:"id"`
	FullName         string `json:"full_name"`
	TeamAbbreviation string `json:"team_abbreviation,omitempty"`
}

// RawGameRecord is one per-game row in provider-native form: column name →
// value, where values may be numbers, strings, string-encoded numbers or nil.
type RawGameRecord map[string]any

// Directory finds players by name.
type Directory interface {
	// FindPlayersByFullName returns zero or more entries whose full name
	// matches name, in directory order.
	FindPlayersByFullName(ctx context.Context, name string) ([]PlayerEntry, error)
}

// GameLogSource returns a player's per-game log for a season, most recent
// game first.
type GameLogSource interface {
	PlayerGameLog(ctx context.Context, playerID int, season string) ([]RawGameRecord, error)
}
