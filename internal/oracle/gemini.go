package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// GeminiOptions configures the Gemini backend. BaseURL is only set in tests.
type GeminiOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Gemini calls Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGemini creates a Gemini client. No network call is made here.
func NewGemini(ctx context.Context, opts GeminiOptions, logger *slog.Logger) (*Gemini, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		client: client,
		model:  opts.Model,
		logger: logger.With("component", "oracle", "backend", "gemini"),
	}, nil
}

// Name implements Oracle.
func (g *Gemini) Name() string { return "gemini:" + g.model }

// Generate implements Oracle.
func (g *Gemini) Generate(ctx context.Context, p Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if p.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	g.logger.Debug("Sending prompt", "model", g.model, "chars", len(p.Text))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.Text), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
