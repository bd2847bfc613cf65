package player

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/albapepper/nba-analytics/internal/provider"
)

// Provider column names.
const (
	colGameDate = "GAME_DATE"
	colMatchup  = "MATCHUP"
	colWL       = "WL"
	colMin      = "MIN"
	colPts      = "PTS"
	colAst      = "AST"
	colReb      = "REB"
	colOReb     = "OREB"
	colDReb     = "DREB"
	colFGM      = "FGM"
	colFGA      = "FGA"
	colFGPct    = "FG_PCT"
	colFG3M     = "FG3M"
	colFG3A     = "FG3A"
	colFG3Pct   = "FG3_PCT"
	colStl      = "STL"
	colBlk      = "BLK"
)

// recordParser accumulates the first field error so Normalize reads as a flat
// list of assignments.
type recordParser struct {
	raw provider.RawGameRecord
	err *FieldError
}

func (p *recordParser) fail(field string, value any, reason string) {
	if p.err == nil {
		p.err = &FieldError{Field: field, Value: value, Reason: reason}
	}
}

func (p *recordParser) text(field string) string {
	v, present := p.raw[field]
	if !present || v == nil {
		p.fail(field, v, "missing")
		return ""
	}
	s, ok := provider.ExtractString(v)
	if !ok {
		p.fail(field, v, "not text")
	}
	return s
}

func (p *recordParser) count(field string) int {
	v, present := p.raw[field]
	if !present || v == nil {
		p.fail(field, v, "missing")
		return 0
	}
	n, ok := provider.ExtractInt(v)
	switch {
	case !ok:
		p.fail(field, v, "not an integer")
	case n < 0:
		p.fail(field, v, "negative")
	}
	return n
}

// optionalCount is count for columns the schema does not require.
func (p *recordParser) optionalCount(field string) *int {
	if v, present := p.raw[field]; !present || v == nil {
		return nil
	}
	n := p.count(field)
	return &n
}

// minutes parses text or numbers as float and keeps whole minutes only.
func (p *recordParser) minutes(field string) int {
	v, present := p.raw[field]
	if !present || v == nil {
		p.fail(field, v, "missing")
		return 0
	}
	f, ok := provider.ExtractValue(v)
	switch {
	case !ok || math.IsNaN(f) || math.IsInf(f, 0):
		p.fail(field, v, "not a number")
		return 0
	case f < 0:
		p.fail(field, v, "negative")
		return 0
	}
	return int(math.Trunc(f))
}

func (p *recordParser) pct(field string) float64 {
	v, present := p.raw[field]
	if !present || v == nil {
		p.fail(field, v, "missing")
		return 0
	}
	f, ok := provider.ExtractValue(v)
	switch {
	case !ok || math.IsNaN(f):
		p.fail(field, v, "not a number")
	case f < 0 || f > 1:
		p.fail(field, v, "outside [0,1]")
	}
	return f
}

// Normalize converts one provider row into a GameRecord. Any field that is
// missing, non-numeric or out of range rejects the record with a
// *FieldError. Normalize is pure: the same input always yields the same
// output.
func Normalize(raw provider.RawGameRecord) (GameRecord, error) {
	p := &recordParser{raw: raw}
	rec := GameRecord{
		GameDate: p.text(colGameDate),
		Matchup:  p.text(colMatchup),
		WL:       p.text(colWL),
		Min:      p.minutes(colMin),
		Pts:      p.count(colPts),
		Ast:      p.count(colAst),
		Reb:      p.count(colReb),
		OReb:     p.count(colOReb),
		DReb:     p.count(colDReb),
		FGM:      p.optionalCount(colFGM),
		FGA:      p.optionalCount(colFGA),
		FGPct:    p.pct(colFGPct),
		FG3M:     p.count(colFG3M),
		FG3A:     p.count(colFG3A),
		FG3Pct:   p.pct(colFG3Pct),
		Stl:      p.count(colStl),
		Blk:      p.count(colBlk),
	}
	if p.err != nil {
		return GameRecord{}, p.err
	}
	return rec, nil
}

// NormalizeLog normalizes every row, skipping (and logging) invalid ones.
// Order is preserved. It fails with ErrNormalizationFailed only when rows
// were supplied and none survived.
func NormalizeLog(raws []provider.RawGameRecord, logger *slog.Logger) ([]GameRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]GameRecord, 0, len(raws))
	var firstErr error
	for i, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			var fe *FieldError
			if errors.As(err, &fe) {
				logger.Warn("Skipping invalid game record",
					"index", i, "game_date", raw[colGameDate],
					"field", fe.Field, "value", fe.Value, "reason", fe.Reason)
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out = append(out, rec)
	}
	if len(raws) > 0 && len(out) == 0 {
		return nil, fmt.Errorf("all %d game records invalid, first: %w", len(raws), firstErr)
	}
	return out, nil
}
