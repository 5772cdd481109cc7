package upstream

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"quirkit/internal/domain/entity"
)

// Excuse providers accepted by NewExcuseGenerator.
const (
	ExcuseProviderNone   = "none"
	ExcuseProviderClaude = "claude"
	ExcuseProviderOpenAI = "openai"

	APIExcuse = "excuse"
)

const (
	excusePrompt = "Give me one short, funny, work-safe excuse for missing a meeting or a deadline. " +
		"Reply with the excuse only, in a single sentence, without quotes."

	maxExcuseRunes = 280
)

var errNoExcuseProvider = errors.New("no excuse provider configured")

// ExcuseGenerator produces a fresh excuse.
type ExcuseGenerator interface {
	GenerateExcuse(ctx context.Context) (entity.Excuse, error)
}

// ExcuseConfig selects and configures the excuse generator.
type ExcuseConfig struct {
	Provider        string
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// NewExcuseGenerator returns the generator for cfg.Provider. A provider whose
// API key is missing degrades to the disabled generator.
func NewExcuseGenerator(client *Client, cfg ExcuseConfig) ExcuseGenerator {
	switch strings.ToLower(cfg.Provider) {
	case ExcuseProviderClaude:
		if cfg.AnthropicAPIKey != "" {
			return NewClaudeExcuses(client, cfg.AnthropicAPIKey, cfg.BaseURL)
		}
	case ExcuseProviderOpenAI:
		if cfg.OpenAIAPIKey != "" {
			return NewOpenAIExcuses(client, cfg.OpenAIAPIKey, cfg.BaseURL)
		}
	}
	return DisabledExcuses{}
}

// DisabledExcuses always reports the excuse API as unavailable, so the
// bundled excuses are served.
type DisabledExcuses struct{}

// GenerateExcuse implements ExcuseGenerator.
func (DisabledExcuses) GenerateExcuse(context.Context) (entity.Excuse, error) {
	return entity.Excuse{}, &UnavailableError{API: APIExcuse, Err: errNoExcuseProvider}
}

// cleanExcuse trims whitespace and wrapping quotes and caps the length.
func cleanExcuse(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"'“”")
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > maxExcuseRunes {
		text = string([]rune(text)[:maxExcuseRunes])
	}
	return text
}
