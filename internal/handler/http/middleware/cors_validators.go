package middleware

import (
	"slices"
	"strings"
)

// WhitelistValidator allows an exact list of origins. Comparison ignores case
// and a trailing slash.
type WhitelistValidator struct {
	allowedOrigins []string
}

// NewWhitelistValidator normalizes origins and drops blanks.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = normalizeOrigin(origin); origin != "" {
			normalized = append(normalized, origin)
		}
	}
	return &WhitelistValidator{allowedOrigins: normalized}
}

// IsAllowed reports whether origin is on the whitelist. An empty origin is
// never allowed.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	return slices.Contains(v.allowedOrigins, origin)
}

// GetAllowedOrigins returns a copy of the normalized whitelist.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	return slices.Clone(v.allowedOrigins)
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
