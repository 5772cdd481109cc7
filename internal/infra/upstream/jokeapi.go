package upstream

import (
	"context"
	"errors"
	"strings"

	"quirkit/internal/domain/entity"
)

const (
	// APIJokeAPI names JokeAPI in breakers, metrics and health keys.
	APIJokeAPI = "jokeapi"

	DefaultJokeAPIURL = "https://v2.jokeapi.dev"

	jokeAPIPath = "/joke/Any?blacklistFlags=nsfw,religious,political,racist,sexist,explicit&type=single"
)

// JokeAPI fetches safe-for-work single jokes.
type JokeAPI struct {
	client  *Client
	baseURL string
}

// NewJokeAPI creates a JokeAPI source. An empty baseURL uses DefaultJokeAPIURL.
func NewJokeAPI(client *Client, baseURL string) *JokeAPI {
	if baseURL == "" {
		baseURL = DefaultJokeAPIURL
	}
	return &JokeAPI{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL is the probe target.
func (j *JokeAPI) BaseURL() string { return j.baseURL }

type jokeAPIResponse struct {
	Error    bool   `json:"error"`
	Message  string `json:"message"`
	Joke     string `json:"joke"`
	Setup    string `json:"setup"`
	Delivery string `json:"delivery"`
}

// RandomJoke returns one joke. Two-part jokes are joined with a space.
func (j *JokeAPI) RandomJoke(ctx context.Context) (entity.Joke, error) {
	var resp jokeAPIResponse
	if err := j.client.FetchJSON(ctx, APIJokeAPI, j.baseURL+jokeAPIPath, &resp); err != nil {
		return entity.Joke{}, err
	}
	if resp.Error {
		return entity.Joke{}, &UnavailableError{API: APIJokeAPI, Err: errors.New(resp.Message)}
	}

	text := resp.Joke
	if text == "" {
		text = strings.TrimSpace(resp.Setup + " " + resp.Delivery)
	}
	if text == "" {
		return entity.Joke{}, unavailable(APIJokeAPI, "empty joke in response")
	}
	return entity.Joke{Joke: text, Type: entity.JokeTypeDad, Source: entity.SourceAPI}, nil
}
