package http

import (
	"net/http"

	"quirkit/internal/handler/http/respond"
)

// Request size limits enforced by InputValidation.
const (
	maxPathLength  = 2048
	maxQueryLength = 2048
)

// InputValidation rejects oversized paths and query strings before routing.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				respond.Fail(w, r, respond.KindValidation, "validation failed: URI too long")
				return
			}
			if len(r.URL.RawQuery) > maxQueryLength {
				respond.Fail(w, r, respond.KindValidation, "validation failed: query string too long")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
