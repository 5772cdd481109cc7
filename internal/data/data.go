// Package data holds the bundled fallback content served when an upstream API
// cannot be reached.
package data

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"quirkit/internal/domain/entity"
)

//go:embed json/*.json
var files embed.FS

// Catalog is the parsed fallback content. Every payload carries Source "fallback".
type Catalog struct {
	Excuses        []entity.Excuse
	Jokes          []entity.Joke
	Quotes         []entity.Quote // Date is empty; see QuotesFor
	ShowerThoughts []entity.ShowerThought
	Drinks         []entity.Drink
	Breaks         []entity.BreakSuggestion
	Compliments    []entity.Compliment

	holidays       map[string]holidayRecord // keyed by "MM-DD"
	defaultHoliday holidayRecord
}

type holidayRecord struct {
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type holidayFile struct {
	Default  holidayRecord   `json:"default"`
	Holidays []holidayRecord `json:"holidays"`
}

// Load parses every embedded file. It fails when a file is missing, malformed
// or empty.
func Load() (*Catalog, error) {
	c := &Catalog{holidays: make(map[string]holidayRecord)}

	var excuses []string
	if err := decode("excuses.json", &excuses); err != nil {
		return nil, err
	}
	for _, e := range excuses {
		c.Excuses = append(c.Excuses, entity.Excuse{Excuse: e, Source: entity.SourceFallback})
	}

	if err := decode("jokes.json", &c.Jokes); err != nil {
		return nil, err
	}
	for i := range c.Jokes {
		c.Jokes[i].Source = entity.SourceFallback
	}

	if err := decode("quotes.json", &c.Quotes); err != nil {
		return nil, err
	}
	for i := range c.Quotes {
		c.Quotes[i].Source = entity.SourceFallback
	}

	var thoughts []string
	if err := decode("showerthoughts.json", &thoughts); err != nil {
		return nil, err
	}
	for _, t := range thoughts {
		c.ShowerThoughts = append(c.ShowerThoughts, entity.ShowerThought{Thought: t, Source: entity.SourceFallback})
	}

	if err := decode("drinks.json", &c.Drinks); err != nil {
		return nil, err
	}
	for i := range c.Drinks {
		c.Drinks[i].Source = entity.SourceFallback
	}

	if err := decode("breaks.json", &c.Breaks); err != nil {
		return nil, err
	}

	if err := decode("compliments.json", &c.Compliments); err != nil {
		return nil, err
	}
	for i := range c.Compliments {
		c.Compliments[i].ID = "fallback-" + strconv.Itoa(i+1)
		c.Compliments[i].IsModerated = true
		c.Compliments[i].IsApproved = true
	}

	var hf holidayFile
	if err := decode("holidays.json", &hf); err != nil {
		return nil, err
	}
	if hf.Default.Name == "" {
		return nil, errors.New("load holidays.json: missing default holiday")
	}
	c.defaultHoliday = hf.Default
	for _, h := range hf.Holidays {
		c.holidays[monthDay(h.Month, h.Day)] = h
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoad is Load for program start-up. It panics on error.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	var errs []error
	check := func(name string, n int) {
		if n == 0 {
			errs = append(errs, fmt.Errorf("%s is empty", name))
		}
	}
	check("excuses", len(c.Excuses))
	check("jokes", len(c.Jokes))
	check("quotes", len(c.Quotes))
	check("shower thoughts", len(c.ShowerThoughts))
	check("drinks", len(c.Drinks))
	check("breaks", len(c.Breaks))
	check("compliments", len(c.Compliments))
	return errors.Join(errs...)
}

// QuotesFor returns every quote stamped with date.
func (c *Catalog) QuotesFor(date string) []entity.Quote {
	out := make([]entity.Quote, len(c.Quotes))
	for i, q := range c.Quotes {
		q.Date = date
		out[i] = q
	}
	return out
}

// HolidayFor returns the bundled holiday on date's month and day, or the
// default "no holiday" entry. date must be YYYY-MM-DD.
func (c *Catalog) HolidayFor(date string) entity.Holiday {
	rec := c.defaultHoliday
	if t, err := time.Parse(entity.DateLayout, date); err == nil {
		if h, ok := c.holidays[monthDay(int(t.Month()), t.Day())]; ok {
			rec = h
		}
	}
	return entity.Holiday{
		Name:        rec.Name,
		Description: rec.Description,
		Date:        date,
		Source:      entity.SourceFallback,
	}
}

// BreaksFor returns the break suggestions of type t; the empty type returns all of them.
func (c *Catalog) BreaksFor(t entity.BreakType) []entity.BreakSuggestion {
	if t == "" {
		return append([]entity.BreakSuggestion(nil), c.Breaks...)
	}
	var out []entity.BreakSuggestion
	for _, b := range c.Breaks {
		if b.Type == t {
			out = append(out, b)
		}
	}
	return out
}

func decode(name string, dst any) error {
	raw, err := files.ReadFile("json/" + name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

func monthDay(month, day int) string {
	return fmt.Sprintf("%02d-%02d", month, day)
}
