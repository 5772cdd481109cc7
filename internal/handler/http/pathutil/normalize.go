// Package pathutil maps request paths to the bounded set of route labels used
// in metrics.
package pathutil

import "strings"

// Unmatched is the label for every path that is not a known route.
const Unmatched = "/unmatched"

// Swagger labels every Swagger UI asset.
const Swagger = "/swagger"

// knownRoutes lists the routes served by the API. Anything else (scanners,
// typos) collapses into Unmatched.
var knownRoutes = map[string]struct{}{
	"/api/excuse":        {},
	"/api/joke":          {},
	"/api/quote":         {},
	"/api/showerthought": {},
	"/api/holiday":       {},
	"/api/drink":         {},
	"/api/timer":         {},
	"/api/spinner":       {},
	"/api/compliment":    {},
	"/health":            {},
	"/live":              {},
	"/ready":             {},
	"/metrics":           {},
}

// NormalizePath returns the route label for path.
//
//	NormalizePath("/api/quote?date=2024-01-01") // "/api/quote"
//	NormalizePath("/api/joke/")                 // "/api/joke"
//	NormalizePath("/swagger/index.html")        // "/swagger"
//	NormalizePath("/wp-login.php")              // "/unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	if path == Swagger || strings.HasPrefix(path, Swagger+"/") {
		return Swagger
	}
	return Unmatched
}
