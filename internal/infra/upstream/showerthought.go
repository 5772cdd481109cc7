package upstream

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/mmcdole/gofeed"

	"quirkit/internal/domain/entity"
	"quirkit/internal/resilience/retry"
)

const (
	APIShowerThoughts = "showerthoughts"

	DefaultShowerThoughtFeedURL = "https://www.reddit.com/r/Showerthoughts/top/.rss?t=day"
)

// ShowerThoughts picks a random post title from the r/Showerthoughts feed.
type ShowerThoughts struct {
	client  *Client
	feedURL string
	intn    func(int) int
}

// NewShowerThoughts creates a feed source. An empty feedURL uses
// DefaultShowerThoughtFeedURL.
func NewShowerThoughts(client *Client, feedURL string) *ShowerThoughts {
	if feedURL == "" {
		feedURL = DefaultShowerThoughtFeedURL
	}
	return &ShowerThoughts{client: client, feedURL: feedURL, intn: rand.IntN}
}

// BaseURL is the probe target.
func (s *ShowerThoughts) BaseURL() string { return s.feedURL }

// RandomThought returns the title of a random feed item.
func (s *ShowerThoughts) RandomThought(ctx context.Context) (entity.ShowerThought, error) {
	var titles []string
	err := s.client.Call(ctx, APIShowerThoughts, func(ctx context.Context) error {
		fp := gofeed.NewParser()
		fp.UserAgent = userAgent
		fp.Client = s.client.HTTPClient()

		feed, err := fp.ParseURLWithContext(s.feedURL, ctx)
		if err != nil {
			var httpErr gofeed.HTTPError
			if errors.As(err, &httpErr) {
				return &retry.HTTPError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
			}
			if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
				return &DecodeError{API: APIShowerThoughts, Err: err}
			}
			return err
		}

		titles = titles[:0]
		for _, item := range feed.Items {
			if t := strings.TrimSpace(item.Title); t != "" {
				titles = append(titles, t)
			}
		}
		return nil
	})
	if err != nil {
		return entity.ShowerThought{}, err
	}
	if len(titles) == 0 {
		return entity.ShowerThought{}, unavailable(APIShowerThoughts, "feed has no items")
	}
	return entity.ShowerThought{Thought: titles[s.intn(len(titles))], Source: entity.SourceAPI}, nil
}
