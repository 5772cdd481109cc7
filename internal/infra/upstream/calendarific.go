package upstream

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quirkit/internal/domain/entity"
)

const (
	APICalendarific = "calendarific"

	DefaultCalendarificURL = "https://calendarific.com/api/v2"
)

// errNoAPIKey is reported as unavailable so the bundled holidays are served.
var errNoAPIKey = errors.New("CALENDARIFIC_API_KEY is not set")

// Calendarific looks up US holidays for a date.
type Calendarific struct {
	client  *Client
	baseURL string
	apiKey  string
	country string
}

// NewCalendarific creates a Calendarific source. An empty baseURL uses
// DefaultCalendarificURL.
func NewCalendarific(client *Client, baseURL, apiKey string) *Calendarific {
	if baseURL == "" {
		baseURL = DefaultCalendarificURL
	}
	return &Calendarific{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		country: "US",
	}
}

// BaseURL is the probe target.
func (c *Calendarific) BaseURL() string { return c.baseURL }

type calendarificResponse struct {
	Response struct {
		Holidays []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Date        struct {
				ISO string `json:"iso"`
			} `json:"date"`
		} `json:"holidays"`
	} `json:"response"`
}

// HolidayOn returns the first holiday Calendarific lists for date (YYYY-MM-DD).
func (c *Calendarific) HolidayOn(ctx context.Context, date string) (entity.Holiday, error) {
	if c.apiKey == "" {
		return entity.Holiday{}, &UnavailableError{API: APICalendarific, Err: errNoAPIKey}
	}
	day, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return entity.Holiday{}, &entity.ValidationError{Field: "date", Message: "invalid date"}
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("country", c.country)
	q.Set("year", strconv.Itoa(day.Year()))
	q.Set("month", strconv.Itoa(int(day.Month())))
	q.Set("day", strconv.Itoa(day.Day()))

	var resp calendarificResponse
	if err := c.client.FetchJSON(ctx, APICalendarific, c.baseURL+"/holidays?"+q.Encode(), &resp); err != nil {
		return entity.Holiday{}, err
	}
	if len(resp.Response.Holidays) == 0 {
		return entity.Holiday{}, unavailable(APICalendarific, "no holidays on %s", date)
	}

	h := resp.Response.Holidays[0]
	iso := h.Date.ISO
	if len(iso) >= len(entity.DateLayout) {
		iso = iso[:len(entity.DateLayout)]
	} else {
		iso = date
	}
	return entity.Holiday{
		Name:        h.Name,
		Description: h.Description,
		Date:        iso,
		Source:      entity.SourceAPI,
	}, nil
}
