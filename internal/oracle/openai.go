package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIOptions configures the OpenAI backend. BaseURL is only set in tests
// or for OpenAI-compatible gateways.
type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAI wraps the OpenAI chat completion API.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAI creates a new OpenAI client.
func NewOpenAI(opts OpenAIOptions, logger *slog.Logger) *OpenAI {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
		logger: logger.With("component", "oracle", "backend", "openai"),
	}
}

// Name implements Oracle.
func (o *OpenAI) Name() string { return "openai:" + o.model }

// Generate sends the prompt as a chat completion and returns the first choice.
func (o *OpenAI) Generate(ctx context.Context, p Prompt) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if p.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: p.Text,
	})

	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
	}
	if p.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	o.logger.Debug("Sending prompt", "model", o.model, "chars", len(p.Text))
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		o.logger.Warn("OpenAI returned empty choices")
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
