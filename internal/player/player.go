// Package player resolves player names, fetches their game logs and
// normalizes provider rows into GameRecords.
package player

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the API layer.
var (
	ErrInvalidQuery        = errors.New("invalid player query")
	ErrNotFound            = errors.New("player not found")
	ErrUpstreamUnavailable = errors.New("statistics provider unavailable")
	ErrNormalizationFailed = errors.New("game record normalization failed")
)

// Identity is a resolved player.
type Identity struct {
	ID       int    `json:"id"`
	FullName string `json:"name"`
	Team     string `json:"team,omitempty"`
}

// GameRecord is one played game in the fixed schema served to callers.
// Counting stats are non-negative; percentages are in [0,1].
type GameRecord struct {
	GameDate string  `json:"gameDate"`
	Matchup  string  `json:"matchup"`
	WL       string  `json:"wl"`
	Min      int     `json:"min"`
	Pts      int     `json:"pts"`
	Ast      int     `json:"ast"`
	Reb      int     `json:"reb"`
	OReb     int     `json:"oreb"`
	DReb     int     `json:"dreb"`
	FGM      *int    `json:"fgm,omitempty"`
	FGA      *int    `json:"fga,omitempty"`
	FGPct    float64 `json:"fgPct"`
	FG3M     int     `json:"fg3m"`
	FG3A     int     `json:"fg3a"`
	FG3Pct   float64 `json:"fg3Pct"`
	Stl      int     `json:"stl"`
	Blk      int     `json:"blk"`
}

// GameLog is the ordered (most recent first) games of one player and season.
type GameLog struct {
	Player Identity     `json:"player"`
	Season string       `json:"season"`
	Games  []GameRecord `json:"games"`
}

// FieldError describes why one provider field rejected its record.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Unwrap makes every FieldError match ErrNormalizationFailed.
func (e *FieldError) Unwrap() error { return ErrNormalizationFailed }
