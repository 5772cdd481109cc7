package upstream

import (
	"context"
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"quirkit/internal/domain/entity"
	"quirkit/internal/resilience/retry"
)

const APIClaude = "claude"

// ClaudeExcuses generates excuses with Anthropic's Claude API.
type ClaudeExcuses struct {
	client    *Client
	api       anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewClaudeExcuses creates a Claude generator. baseURL may be empty.
func NewClaudeExcuses(client *Client, apiKey, baseURL string) *ClaudeExcuses {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(client.HTTPClient()),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &ClaudeExcuses{
		client:    client,
		api:       anthropic.NewClient(opts...),
		model:     anthropic.ModelClaudeSonnet4_5_20250929,
		maxTokens: 128,
	}
}

// GenerateExcuse implements ExcuseGenerator.
func (c *ClaudeExcuses) GenerateExcuse(ctx context.Context) (entity.Excuse, error) {
	var text string
	err := c.client.Call(ctx, APIClaude, func(ctx context.Context) error {
		message, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     c.model,
			MaxTokens: c.maxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(excusePrompt)),
			},
		})
		if err != nil {
			var apiErr *anthropic.Error
			if errors.As(err, &apiErr) {
				return &retry.HTTPError{StatusCode: apiErr.StatusCode, Message: http.StatusText(apiErr.StatusCode)}
			}
			return err
		}

		for _, block := range message.Content {
			if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
				text = cleanExcuse(tb.Text)
				break
			}
		}
		return nil
	})
	if err != nil {
		return entity.Excuse{}, err
	}
	if text == "" {
		return entity.Excuse{}, unavailable(APIClaude, "empty completion")
	}
	return entity.Excuse{Excuse: text, Source: entity.SourceAPI}, nil
}
