// Package predict turns a player's recent stats into a next-game projection
// by prompting the oracle and validating what comes back.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/albapepper/nba-analytics/internal/oracle"
)

// SchemaVersion identifies the projection shape {pts, reb, ast, reasoning}.
const SchemaVersion = "v1"

// Error kinds surfaced to the API layer.
var (
	ErrInvalidRequest          = errors.New("invalid prediction request")
	ErrOracleUnavailable       = errors.New("prediction oracle unavailable")
	ErrOracleMalformedResponse = errors.New("prediction oracle returned a malformed response")
)

// Request is the caller-supplied input. Stats elements are opaque; they are
// only required to be valid JSON.
type Request struct {
	PlayerName string            `json:"player_name"`
	Stats      []json.RawMessage `json:"stats"`
}

// Result is a validated projection.
type Result struct {
	Pts       float64 `json:"pts"`
	Reb       float64 `json:"reb"`
	Ast       float64 `json:"ast"`
	Reasoning string  `json:"reasoning"`
}

// MalformedError keeps the oracle's raw text for logging.
type MalformedError struct {
	Raw    string
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed oracle response: " + e.Reason
}

func (e *MalformedError) Unwrap() error { return ErrOracleMalformedResponse }

// Orchestrator builds prompts, calls the oracle once and validates the answer.
type Orchestrator struct {
	oracle  oracle.Oracle
	persona string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an Orchestrator. timeout bounds each oracle call.
func New(o oracle.Oracle, persona string, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{oracle: o, persona: persona, timeout: timeout, logger: logger}
}

// Predict projects the next game for req. No retries, no caching.
func (o *Orchestrator) Predict(ctx context.Context, req Request) (Result, error) {
	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		return Result{}, fmt.Errorf("%w: player_name is required", ErrInvalidRequest)
	}
	if req.Stats == nil {
		return Result{}, fmt.Errorf("%w: stats is required", ErrInvalidRequest)
	}

	statsText, err := SerializeStats(req.Stats)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := o.oracle.Generate(ctx, oracle.Prompt{
		System: o.persona,
		Text:   BuildPrompt(name, statsText),
		JSON:   true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrOracleUnavailable, o.oracle.Name(), err)
	}
	o.logger.Info("Oracle answered",
		"oracle", o.oracle.Name(), "player", name, "games", len(req.Stats),
		"duration", time.Since(start).Round(time.Millisecond))

	return ParseResult(text)
}

// SerializeStats renders stats as a compact JSON array. Each element is
// decoded and re-encoded so object keys come out sorted, making the prompt
// independent of the caller's key order.
func SerializeStats(stats []json.RawMessage) (string, error) {
	items := make([]any, len(stats))
	for i, raw := range stats {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&items[i]); err != nil {
			return "", fmt.Errorf("stats[%d] is not valid JSON: %w", i, err)
		}
	}
	out, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode stats: %w", err)
	}
	return string(out), nil
}

// BuildPrompt is the single instruction sent to the oracle.
func BuildPrompt(playerName, statsJSON string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are the recent game stats for %s, most recent game first:\n", playerName)
	sb.WriteString(statsJSON)
	sb.WriteString("\n\nBased on this trend, predict their stats for the next game.\n")
	sb.WriteString("Return ONLY a JSON object with exactly these keys:\n")
	sb.WriteString(`  "pts" (number), "reb" (number), "ast" (number), "reasoning" (string)`)
	sb.WriteString("\nDo not use markdown formatting or any text outside the JSON object.")
	return sb.String()
}

// ParseResult validates the oracle's text against the v1 schema. A single
// surrounding markdown code fence is tolerated.
func ParseResult(text string) (Result, error) {
	body := stripCodeFence(strings.TrimSpace(text))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return Result{}, &MalformedError{Raw: text, Reason: "not a JSON object"}
	}

	var res Result
	for _, f := range []struct {
		key string
		dst *float64
	}{{"pts", &res.Pts}, {"reb", &res.Reb}, {"ast", &res.Ast}} {
		raw, ok := fields[f.key]
		if !ok || isNull(raw) {
			return Result{}, &MalformedError{Raw: text, Reason: "missing key " + f.key}
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return Result{}, &MalformedError{Raw: text, Reason: f.key + " is not a number"}
		}
		if *f.dst < 0 {
			return Result{}, &MalformedError{Raw: text, Reason: f.key + " is negative"}
		}
	}

	raw, ok := fields["reasoning"]
	if !ok || isNull(raw) {
		return Result{}, &MalformedError{Raw: text, Reason: "missing key reasoning"}
	}
	if err := json.Unmarshal(raw, &res.Reasoning); err != nil {
		return Result{}, &MalformedError{Raw: text, Reason: "reasoning is not a string"}
	}
	return res, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		s = s[nl+1:] // language tag
	}
	return strings.TrimSpace(s)
}
