package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirkit/internal/domain/entity"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Excuses)
	assert.NotEmpty(t, c.Jokes)
	assert.NotEmpty(t, c.Quotes)
	assert.NotEmpty(t, c.ShowerThoughts)
	assert.NotEmpty(t, c.Drinks)
	assert.NotEmpty(t, c.Breaks)
	assert.NotEmpty(t, c.Compliments)

	for _, e := range c.Excuses {
		assert.Equal(t, entity.SourceFallback, e.Source)
		assert.NotEmpty(t, e.Excuse)
	}
	for _, j := range c.Jokes {
		assert.Equal(t, entity.SourceFallback, j.Source)
		assert.Contains(t, []entity.JokeType{entity.JokeTypeDad, entity.JokeTypeOneLiner}, j.Type)
	}
	for _, d := range c.Drinks {
		assert.NotEmpty(t, d.Ingredients, d.Name)
		assert.NotEmpty(t, d.Instructions, d.Name)
	}
	for _, b := range c.Breaks {
		assert.Contains(t, []entity.BreakType{entity.BreakShort, entity.BreakLong}, b.Type)
		assert.Positive(t, b.Duration)
	}
	for _, cm := range c.Compliments {
		assert.True(t, cm.Approved())
		assert.NotEmpty(t, cm.ID)
	}
}

func TestCatalog_QuotesFor(t *testing.T) {
	c := MustLoad()

	quotes := c.QuotesFor("2026-03-14")
	require.Len(t, quotes, len(c.Quotes))
	for _, q := range quotes {
		assert.Equal(t, "2026-03-14", q.Date)
	}
	assert.Empty(t, c.Quotes[0].Date, "QuotesFor must not modify the catalog")
}

func TestCatalog_HolidayFor(t *testing.T) {
	c := MustLoad()

	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "known holiday", date: "2026-03-14", want: "Pi Day"},
		{name: "same day other year", date: "2025-10-31", want: "Halloween"},
		{name: "no holiday", date: "2026-03-15", want: "No Special Holiday Today"},
		{name: "unparseable date", date: "nope", want: "No Special Holiday Today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := c.HolidayFor(tt.date)
			assert.Equal(t, tt.want, h.Name)
			assert.Equal(t, tt.date, h.Date)
			assert.Equal(t, entity.SourceFallback, h.Source)
			assert.NotEmpty(t, h.Description)
		})
	}
}

func TestCatalog_BreaksFor(t *testing.T) {
	c := MustLoad()

	assert.Len(t, c.BreaksFor(""), len(c.Breaks))

	for _, bt := range []entity.BreakType{entity.BreakShort, entity.BreakLong} {
		got := c.BreaksFor(bt)
		require.NotEmpty(t, got)
		for _, b := range got {
			assert.Equal(t, bt, b.Type)
		}
	}
}
