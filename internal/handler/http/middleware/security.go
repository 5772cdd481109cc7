package middleware

import (
	"net/http"
	"strings"

	"quirkit/pkg/security/csp"
)

// SecurityConfig selects the content security policy per request path.
type SecurityConfig struct {
	// DefaultPolicy applies when no PathPolicies prefix matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to policies. The longest matching
	// prefix wins ("/swagger/" matches "/swagger/index.html").
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly sends every policy as Content-Security-Policy-Report-Only.
	ReportOnly bool
}

type cspHeader struct {
	prefix string
	name   string
	value  string
}

func newCSPHeader(prefix string, policy *csp.CSPBuilder, reportOnly bool) cspHeader {
	if policy == nil {
		return cspHeader{prefix: prefix}
	}
	if reportOnly {
		policy.ReportOnly(true)
	}
	return cspHeader{prefix: prefix, name: policy.HeaderName(), value: policy.Build()}
}

// SecurityHeaders sets the content security policy and the usual hardening
// headers on every response.
func SecurityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	def := newCSPHeader("", cfg.DefaultPolicy, cfg.ReportOnly)
	paths := make([]cspHeader, 0, len(cfg.PathPolicies))
	for prefix, policy := range cfg.PathPolicies {
		paths = append(paths, newCSPHeader(prefix, policy, cfg.ReportOnly))
	}

	selectHeader := func(path string) cspHeader {
		best := def
		for _, p := range paths {
			if strings.HasPrefix(path, p.prefix) && len(p.prefix) > len(best.prefix) {
				best = p
			}
		}
		return best
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if c := selectHeader(r.URL.Path); c.value != "" {
				h.Set(c.name, c.value)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
