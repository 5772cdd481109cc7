package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DateLayout is the only accepted date format.
	DateLayout = "2006-01-02"

	MinSpinChoices     = 2
	MaxSpinChoices     = 5
	MaxSpinChoiceRunes = 100

	MaxComplimentMessageRunes = 500
	MaxComplimentSenderRunes  = 50

	maxSanitizedRunes = 1000
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// ValidateDate checks a YYYY-MM-DD date within one year either side of now.
// An empty date is valid; callers substitute today.
func ValidateDate(date string, now time.Time) error {
	if date == "" {
		return nil
	}
	if !datePattern.MatchString(date) {
		return &ValidationError{Field: "date", Message: "invalid date format, expected YYYY-MM-DD"}
	}

	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return &ValidationError{Field: "date", Message: "invalid date"}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today.AddDate(-1, 0, 0)) || parsed.After(today.AddDate(1, 0, 0)) {
		return &ValidationError{Field: "date", Message: "date must be within one year of today"}
	}
	return nil
}

// ParseBreakType accepts "", "short" or "long". The empty string means any type.
func ParseBreakType(raw string) (BreakType, error) {
	switch BreakType(raw) {
	case "", BreakShort, BreakLong:
		return BreakType(raw), nil
	default:
		return "", &ValidationError{Field: "type", Message: "invalid timer type, must be 'short' or 'long'"}
	}
}

// NormalizeChoices trims each choice, drops blanks and duplicates (keeping the
// first occurrence) and checks that 2 to 5 choices of at most 100 characters remain.
func NormalizeChoices(choices []string) ([]string, error) {
	if choices == nil {
		return nil, &ValidationError{Field: "choices", Message: "choices must be an array"}
	}

	seen := make(map[string]struct{}, len(choices))
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if utf8.RuneCountInString(c) > MaxSpinChoiceRunes {
			return nil, &ValidationError{
				Field:   "choices",
				Message: fmt.Sprintf("each choice must be at most %d characters", MaxSpinChoiceRunes),
			}
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	if len(out) < MinSpinChoices || len(out) > MaxSpinChoices {
		return nil, &ValidationError{
			Field:   "choices",
			Message: fmt.Sprintf("need between %d and %d distinct choices, got %d", MinSpinChoices, MaxSpinChoices, len(out)),
		}
	}
	return out, nil
}

// ValidateCompliment trims message and sender and checks required fields and lengths.
// Profanity is not a validation failure; see ContainsProfanity.
func ValidateCompliment(message, sender string) (string, string, error) {
	message = strings.TrimSpace(message)
	sender = strings.TrimSpace(sender)

	switch {
	case message == "":
		return "", "", &ValidationError{Field: "message", Message: "message is required"}
	case utf8.RuneCountInString(message) > MaxComplimentMessageRunes:
		return "", "", &ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("message must be at most %d characters", MaxComplimentMessageRunes),
		}
	case sender == "":
		return "", "", &ValidationError{Field: "sender", Message: "sender is required"}
	case utf8.RuneCountInString(sender) > MaxComplimentSenderRunes:
		return "", "", &ValidationError{
			Field:   "sender",
			Message: fmt.Sprintf("sender must be at most %d characters", MaxComplimentSenderRunes),
		}
	}
	return message, sender, nil
}

// SanitizeText collapses whitespace, strips angle brackets and caps the length.
func SanitizeText(text string) string {
	text = spaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	text = strings.NewReplacer("<", "", ">", "").Replace(text)
	if utf8.RuneCountInString(text) > maxSanitizedRunes {
		text = string([]rune(text)[:maxSanitizedRunes])
	}
	return text
}
