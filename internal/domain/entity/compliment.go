package entity

import "strings"

// ModerationFlagProfanity marks a compliment held back for containing a blocked word.
const ModerationFlagProfanity = "profanity"

// Compliment is a user-submitted compliment.
type Compliment struct {
	ID              string   `json:"id"`
	Message         string   `json:"message"`
	Sender          string   `json:"sender"`
	Timestamp       int64    `json:"timestamp"` // epoch milliseconds
	IsModerated     bool     `json:"isModerated"`
	IsApproved      bool     `json:"isApproved"`
	ModerationFlags []string `json:"moderationFlags,omitempty"`
}

// Approved reports whether c may be shown to other users.
func (c Compliment) Approved() bool {
	return c.IsApproved
}

// blockedWords is matched as lower-case substrings.
var blockedWords = []string{
	"damn", "hell", "shit", "fuck", "bitch", "ass", "bastard", "crap",
	"piss", "dick", "cock", "pussy", "whore", "slut", "fag", "nigger",
}

// ContainsProfanity reports whether text contains a blocked word, ignoring case.
// Matching is by substring, so "class" matches "ass".
func ContainsProfanity(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range blockedWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
