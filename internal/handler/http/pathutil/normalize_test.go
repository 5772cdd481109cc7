package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "fun route", path: "/api/joke", expected: "/api/joke"},
		{name: "query string", path: "/api/quote?date=2024-01-01", expected: "/api/quote"},
		{name: "trailing slash", path: "/api/compliment/", expected: "/api/compliment"},
		{name: "operational route", path: "/metrics", expected: "/metrics"},
		{name: "swagger asset", path: "/swagger/index.html", expected: Swagger},
		{name: "swagger root", path: "/swagger/", expected: Swagger},
		{name: "swagger lookalike", path: "/swaggerx", expected: Unmatched},
		{name: "unknown route", path: "/wp-login.php", expected: Unmatched},
		{name: "unknown api route", path: "/api/jokes/123", expected: Unmatched},
		{name: "root", path: "/", expected: Unmatched},
		{name: "empty", path: "", expected: Unmatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
