// Package respond writes the JSON envelope every API route answers with and
// maps errors to envelope codes, statuses and message categories.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"quirkit/internal/domain/entity"
	"quirkit/internal/infra/upstream"
	"quirkit/internal/observability/logging"
	"quirkit/internal/resilience/fallback"
)

// Kind is one entry of the error taxonomy.
type Kind struct {
	Code     string
	Status   int
	Category Category
}

// Error kinds.
var (
	KindValidation       = Kind{Code: "VALIDATION_ERROR", Status: http.StatusBadRequest, Category: CategorySarcastic}
	KindNotFound         = Kind{Code: "NOT_FOUND", Status: http.StatusNotFound, Category: CategoryMeme}
	KindRateLimited      = Kind{Code: "RATE_LIMIT_EXCEEDED", Status: http.StatusTooManyRequests, Category: CategoryChill}
	KindTimeout          = Kind{Code: "TIMEOUT_ERROR", Status: http.StatusRequestTimeout, Category: CategoryGaming}
	KindExternalAPI      = Kind{Code: "EXTERNAL_API_ERROR", Status: http.StatusServiceUnavailable, Category: CategoryNerdy}
	KindInternal         = Kind{Code: "INTERNAL_ERROR", Status: http.StatusInternalServerError, Category: CategoryChaotic}
	KindMethodNotAllowed = Kind{Code: "METHOD_NOT_ALLOWED", Status: http.StatusMethodNotAllowed, Category: CategorySarcastic}
)

// Technical messages used when the error itself should not be shown.
const (
	MsgRateLimited  = "Too many requests. Please slow down!"
	MsgTimeout      = "Request timed out"
	MsgInternal     = "internal server error"
	MsgBodyTooLarge = "validation failed: request body too large"
	MsgInvalidJSON  = "validation failed: invalid JSON body"
	MsgNotFound     = "Resource not found"
)

// SuccessEnvelope wraps the payload of a successful response.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail is the error member of a failure envelope.
type ErrorDetail struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent.
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// OK writes {"success": true, "data": data} with status 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, SuccessEnvelope{Success: true, Data: data})
}

// Fail writes a failure envelope for kind. technical is appended to a random
// line of the kind's category.
func Fail(w http.ResponseWriter, r *http.Request, kind Kind, technical string) {
	logging.FromContext(r.Context()).WarnContext(r.Context(), "request failed",
		slog.String("code", kind.Code),
		slog.Int("status", kind.Status),
		slog.String("path", r.URL.Path),
		slog.String("error", technical))

	JSON(w, kind.Status, ErrorEnvelope{Error: ErrorDetail{
		Code:     kind.Code,
		Message:  QuirkyMessage(kind.Category, technical),
		Category: kind.Category,
	}})
}

// MethodNotAllowed answers 405 with an Allow header listing allowed.
func MethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	list := strings.Join(allowed, ", ")
	w.Header().Set("Allow", list)
	JSON(w, http.StatusMethodNotAllowed, ErrorEnvelope{Error: ErrorDetail{
		Code:     KindMethodNotAllowed.Code,
		Message:  "Method not allowed. Allowed methods: " + list,
		Category: KindMethodNotAllowed.Category,
	}})
}

// Dispatch maps err to an error kind and writes the failure envelope.
// Typed errors are honoured first; otherwise keywords in the message decide,
// defaulting to an internal error. Technical messages have secrets masked.
func Dispatch(w http.ResponseWriter, r *http.Request, err error) {
	kind, technical := Classify(err)
	if kind == KindInternal {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "internal server error",
			slog.String("path", r.URL.Path),
			slog.String("error", SanitizeError(err)))
	}
	Fail(w, r, kind, technical)
}

// Classify returns the kind for err and the technical message to show.
func Classify(err error) (Kind, string) {
	if err == nil {
		return KindInternal, MsgInternal
	}

	var validation *entity.ValidationError
	var unavailable *upstream.UnavailableError
	switch {
	case errors.As(err, &validation), errors.Is(err, entity.ErrInvalidInput):
		return KindValidation, err.Error()
	case errors.Is(err, entity.ErrNotFound):
		return KindNotFound, err.Error()
	case errors.Is(err, fallback.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout, MsgTimeout
	case errors.As(err, &unavailable):
		return KindExternalAPI, "External service " + unavailable.API + " is currently unavailable"
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "timeout"):
		return KindTimeout, MsgTimeout
	case strings.Contains(lower, "not found"), strings.Contains(msg, "404"):
		return KindNotFound, MsgNotFound
	case strings.Contains(lower, "rate limit"), strings.Contains(msg, "429"):
		return KindRateLimited, MsgRateLimited
	case strings.Contains(lower, "validation"), strings.Contains(lower, "invalid"):
		return KindValidation, SanitizeError(err)
	}
	return KindInternal, SanitizeError(err)
}
