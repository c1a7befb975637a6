// Package openai scores transcripts for viral clip windows with an
// OpenAI-compatible chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
	oai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel = "gpt-4-turbo-preview"
	temperature  = 0.3
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Analyzer struct {
	client *oai.Client
	model  string
}

// New returns an Analyzer. Without an API key every Score call fails with
// domain.ErrNotConfigured.
func New(cfg Config) *Analyzer {
	a := &Analyzer{model: cfg.Model}
	if a.model == "" {
		a.model = DefaultModel
	}
	if cfg.APIKey == "" {
		return a
	}
	clientCfg := oai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	a.client = oai.NewClientWithConfig(clientCfg)
	return a
}

func (a *Analyzer) Score(ctx context.Context, segments []domain.Segment, criteria []domain.Criterion, constraints domain.ClipConstraints) ([]domain.ClipWindow, error) {
	if a.client == nil {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", domain.ErrNotConfigured)
	}
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%w: no criteria", domain.ErrNotConfigured)
	}
	if len(segments) == 0 {
		return nil, nil
	}

	req := oai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: temperature,
		Messages: []oai.ChatCompletionMessage{
			{Role: oai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: oai.ChatMessageRoleUser, Content: buildPrompt(segments, criteria, constraints)},
		},
	}
	if strings.Contains(a.model, "gpt-4") {
		req.ResponseFormat = &oai.ChatCompletionResponseFormat{Type: oai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var apiErr *oai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("openai api error (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		logger.Warn.Printf("analyzer returned an empty reply")
		return nil, nil
	}

	content := resp.Choices[0].Message.Content
	windows := parseWindows(content)
	if len(windows) == 0 {
		logger.Debug.Printf("analyzer reply had no usable windows: %s", logger.SanitizeForLog(preview(content, 300)))
	}
	selected := domain.SelectWindows(windows, constraints)
	logger.Info.Printf("analyzer proposed %d windows, %d accepted", len(windows), len(selected))
	return selected, nil
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ port.Analyzer = (*Analyzer)(nil)
