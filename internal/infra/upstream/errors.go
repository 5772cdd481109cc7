package upstream

import (
	"fmt"
)

// UnavailableError is a failure to reach an upstream API: a transport error,
// a 5xx/408/429 status, an open circuit, or a source that is not configured.
// The resolver serves fallback data for it.
type UnavailableError struct {
	API string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.API, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Fallbackable implements fallback.Fallbacker.
func (e *UnavailableError) Fallbackable() bool { return true }

// ResponseError is a non-2xx answer that is not an availability problem,
// such as 404 or 401.
type ResponseError struct {
	API        string
	StatusCode int
	Status     string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Fallbackable implements fallback.Fallbacker.
func (e *ResponseError) Fallbackable() bool { return false }

// DecodeError is an upstream body that could not be parsed.
type DecodeError struct {
	API string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.API, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Fallbackable implements fallback.Fallbacker.
func (e *DecodeError) Fallbackable() bool { return false }

func unavailable(api string, format string, args ...any) *UnavailableError {
	return &UnavailableError{API: api, Err: fmt.Errorf(format, args...)}
}
