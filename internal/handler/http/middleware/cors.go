// Package middleware holds the cross-cutting HTTP middleware of the API
// server: CORS, client IP extraction and per-IP rate limiting.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// Preflight defaults sent on every CORS response.
const (
	DefaultAllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	DefaultAllowedHeaders = "Content-Type, Authorization"
	DefaultMaxAge         = 86400
)

// OriginValidator decides whether an Origin may read responses.
type OriginValidator interface {
	IsAllowed(origin string) bool
	GetAllowedOrigins() []string
}

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowAll answers every origin with "*". Set when the configured
	// origin list contains "*".
	AllowAll bool

	// Validator checks origins when AllowAll is false.
	Validator OriginValidator

	AllowedMethods string
	AllowedHeaders string
	MaxAge         int

	Logger *slog.Logger
}

// NewCORSConfig builds a policy from a list of origins. An empty list or a
// list containing "*" allows every origin.
func NewCORSConfig(origins []string, logger *slog.Logger) CORSConfig {
	cfg := CORSConfig{
		AllowedMethods: DefaultAllowedMethods,
		AllowedHeaders: DefaultAllowedHeaders,
		MaxAge:         DefaultMaxAge,
		Logger:         logger,
	}
	if logger == nil {
		cfg.Logger = slog.Default()
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAll = true
		return cfg
	}
	cfg.Validator = NewWhitelistValidator(origins)
	return cfg
}

// CORS sets the CORS headers and answers preflight requests.
//
// Preflight (OPTIONS) requests are answered with 200 and never reach next.
// A request from an origin outside the whitelist gets no
// Access-Control-Allow-Origin header and the browser blocks the response.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	if config.AllowedMethods == "" {
		config.AllowedMethods = DefaultAllowedMethods
	}
	if config.AllowedHeaders == "" {
		config.AllowedHeaders = DefaultAllowedHeaders
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case config.AllowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && config.Validator != nil && config.Validator.IsAllowed(origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			case origin != "":
				config.Logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
			}

			w.Header().Set("Access-Control-Allow-Methods", config.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", config.AllowedHeaders)
			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

			if r.Method == http.MethodOptions {
				config.Logger.Debug("CORS: preflight request",
					slog.String("origin", origin),
					slog.String("requested_method", r.Header.Get("Access-Control-Request-Method")))
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
