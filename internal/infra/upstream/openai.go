package upstream

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"quirkit/internal/domain/entity"
	"quirkit/internal/resilience/retry"
)

const APIOpenAI = "openai"

// OpenAIExcuses generates excuses with the OpenAI chat completions API.
type OpenAIExcuses struct {
	client *Client
	api    *openai.Client
	model  string
}

// NewOpenAIExcuses creates an OpenAI generator. baseURL may be empty; when set
// it must include the API version path ("https://host/v1").
func NewOpenAIExcuses(client *Client, apiKey, baseURL string) *OpenAIExcuses {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = client.HTTPClient()
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIExcuses{
		client: client,
		api:    openai.NewClientWithConfig(cfg),
		model:  openai.GPT4oMini,
	}
}

// GenerateExcuse implements ExcuseGenerator.
func (o *OpenAIExcuses) GenerateExcuse(ctx context.Context) (entity.Excuse, error) {
	var text string
	err := o.client.Call(ctx, APIOpenAI, func(ctx context.Context) error {
		resp, err := o.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:     o.model,
			MaxTokens: 128,
			Messages: []openai.ChatCompletionMessage{{
				Role:    openai.ChatMessageRoleUser,
				Content: excusePrompt,
			}},
		})
		if err != nil {
			return openAIStatusError(err)
		}
		if len(resp.Choices) > 0 {
			text = cleanExcuse(resp.Choices[0].Message.Content)
		}
		return nil
	})
	if err != nil {
		return entity.Excuse{}, err
	}
	if text == "" {
		return entity.Excuse{}, unavailable(APIOpenAI, "empty completion")
	}
	return entity.Excuse{Excuse: text, Source: entity.SourceAPI}, nil
}

func openAIStatusError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: http.StatusText(apiErr.HTTPStatusCode)}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: http.StatusText(reqErr.HTTPStatusCode)}
	}
	return err
}
