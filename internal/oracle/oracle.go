// Package oracle wraps the hosted text-generation models used for
// projections behind one narrow interface.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albapepper/nba-analytics/internal/config"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("oracle returned an empty response")

// Prompt is one synchronous generation request.
type Prompt struct {
	System string // persona / system instruction
	Text   string // user prompt
	JSON   bool   // ask the backend for a JSON-only response
}

// Oracle generates text for a prompt. Implementations make exactly one
// backend call per Generate.
type Oracle interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Name() string
}

// New builds the backend selected by cfg.OracleBackend.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Oracle, error) {
	switch cfg.OracleBackend {
	case config.OracleGemini:
		return NewGemini(ctx, GeminiOptions{APIKey: cfg.OracleAPIKey, Model: cfg.OracleModel}, logger)
	case config.OracleOpenAI:
		return NewOpenAI(OpenAIOptions{APIKey: cfg.OracleAPIKey, Model: cfg.OracleModel}, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown oracle backend %q", config.ErrConfiguration, cfg.OracleBackend)
	}
}
