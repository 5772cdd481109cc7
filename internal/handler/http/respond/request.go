package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
)

// AllowMethods answers 405 for any method not in allowed. OPTIONS is left to
// the CORS middleware and never reaches next.
func AllowMethods(next http.Handler, allowed ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !slices.Contains(allowed, r.Method) {
			MethodNotAllowed(w, allowed...)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DecodeJSON decodes the request body into dst. On failure it writes a
// VALIDATION_ERROR envelope and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		Fail(w, r, KindValidation, MsgInvalidJSON)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			Fail(w, r, KindValidation, MsgBodyTooLarge)
			return false
		}
		Fail(w, r, KindValidation, MsgInvalidJSON)
		return false
	}
	return true
}
