package upstream

import (
	"context"
	"strings"

	"quirkit/internal/domain/entity"
)

const (
	APIQuotable = "quotable"

	DefaultQuotableURL = "https://api.quotable.io"
)

// Quotable fetches random quotes.
type Quotable struct {
	client  *Client
	baseURL string
}

// NewQuotable creates a Quotable source. An empty baseURL uses DefaultQuotableURL.
func NewQuotable(client *Client, baseURL string) *Quotable {
	if baseURL == "" {
		baseURL = DefaultQuotableURL
	}
	return &Quotable{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL is the probe target.
func (q *Quotable) BaseURL() string { return q.baseURL }

// RandomQuote returns a random quote stamped with date.
func (q *Quotable) RandomQuote(ctx context.Context, date string) (entity.Quote, error) {
	var resp struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	if err := q.client.FetchJSON(ctx, APIQuotable, q.baseURL+"/random", &resp); err != nil {
		return entity.Quote{}, err
	}
	if resp.Content == "" {
		return entity.Quote{}, unavailable(APIQuotable, "empty quote in response")
	}
	return entity.Quote{
		Quote:  resp.Content,
		Author: resp.Author,
		Date:   date,
		Source: entity.SourceAPI,
	}, nil
}
