package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "empty means today", date: ""},
		{name: "today", date: "2026-06-15"},
		{name: "one year back", date: "2025-06-15"},
		{name: "one year ahead", date: "2027-06-15"},
		{name: "too old", date: "2025-06-14", wantErr: true},
		{name: "too far ahead", date: "2027-06-16", wantErr: true},
		{name: "wrong format", date: "15/06/2026", wantErr: true},
		{name: "impossible day", date: "2026-02-30", wantErr: true},
		{name: "trailing junk", date: "2026-06-15x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.date, now)
			if tt.wantErr {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "date", vErr.Field)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseBreakType(t *testing.T) {
	for _, raw := range []string{"", "short", "long"} {
		got, err := ParseBreakType(raw)
		require.NoError(t, err)
		assert.Equal(t, BreakType(raw), got)
	}

	_, err := ParseBreakType("medium")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeChoices(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{name: "two choices", in: []string{"A", "B"}, want: []string{"A", "B"}},
		{name: "trims and drops blanks", in: []string{" pizza ", "", "  ", "tacos"}, want: []string{"pizza", "tacos"}},
		{name: "dedupes keeping first", in: []string{"A", "B", "A", " B"}, want: []string{"A", "B"}},
		{name: "five is the max", in: []string{"1", "2", "3", "4", "5"}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "six is too many", in: []string{"1", "2", "3", "4", "5", "6"}, wantErr: true},
		{name: "duplicates leave one", in: []string{"A", "A"}, wantErr: true},
		{name: "nil", in: nil, wantErr: true},
		{name: "too long", in: []string{"A", strings.Repeat("x", 101)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeChoices(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NormalizeChoices() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateCompliment(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		sender    string
		wantField string
	}{
		{name: "ok", message: " You light up the room ", sender: " Sam "},
		{name: "missing message", message: "   ", sender: "Sam", wantField: "message"},
		{name: "long message", message: strings.Repeat("a", 501), sender: "Sam", wantField: "message"},
		{name: "missing sender", message: "hi", sender: "", wantField: "sender"},
		{name: "long sender", message: "hi", sender: strings.Repeat("b", 51), wantField: "sender"},
		{name: "profanity is allowed through", message: "you are damn cool", sender: "Sam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, sender, err := ValidateCompliment(tt.message, tt.sender)
			if tt.wantField != "" {
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.wantField, vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.message), msg)
			assert.Equal(t, strings.TrimSpace(tt.sender), sender)
		})
	}
}

func TestContainsProfanity(t *testing.T) {
	assert.True(t, ContainsProfanity("What the HELL"))
	assert.True(t, ContainsProfanity("classy"), "substring matching is intentional")
	assert.False(t, ContainsProfanity("You are wonderful"))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello world script", SanitizeText("  hello \n\t world <script>  "))
	assert.Len(t, []rune(SanitizeText(strings.Repeat("é", 1200))), 1000)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "choices", Message: "too few"}
	assert.Equal(t, "validation error on field 'choices': too few", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
}
