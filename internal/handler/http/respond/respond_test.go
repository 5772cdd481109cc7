package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirkit/internal/domain/entity"
	"quirkit/internal/infra/upstream"
	"quirkit/internal/resilience/fallback"
)

// firstLine makes message selection deterministic.
func firstLine(t *testing.T) {
	t.Helper()
	orig := intn
	intn = func(int) int { return 0 }
	t.Cleanup(func() { intn = orig })
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorDetail    `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{name: "map", code: http.StatusOK, data: map[string]string{"message": "success"}, expectedBody: `{"message":"success"}`},
		{name: "struct", code: http.StatusCreated, data: struct{ ID int }{ID: 123}, expectedBody: `{"ID":123}`},
		{name: "nil", code: http.StatusNoContent, data: nil, expectedBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.code, tt.data)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"joke": "I'm reading a book on anti-gravity."})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"joke":"I'm reading a book on anti-gravity."}}`, rec.Body.String())
}

func TestDispatch(t *testing.T) {
	firstLine(t)

	tests := []struct {
		name          string
		err           error
		wantStatus    int
		wantCode      string
		wantCategory  Category
		wantTechnical string
	}{
		{
			name:          "validation error",
			err:           &entity.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"},
			wantStatus:    http.StatusBadRequest,
			wantCode:      "VALIDATION_ERROR",
			wantCategory:  CategorySarcastic,
			wantTechnical: "validation error on field 'date': must be YYYY-MM-DD",
		},
		{
			name:          "not found sentinel",
			err:           fmt.Errorf("holiday: %w", entity.ErrNotFound),
			wantStatus:    http.StatusNotFound,
			wantCode:      "NOT_FOUND",
			wantCategory:  CategoryMeme,
			wantTechnical: "holiday: not found",
		},
		{
			name:          "resolver timeout",
			err:           fallback.ErrTimeout,
			wantStatus:    http.StatusRequestTimeout,
			wantCode:      "TIMEOUT_ERROR",
			wantCategory:  CategoryGaming,
			wantTechnical: MsgTimeout,
		},
		{
			name:          "upstream unavailable",
			err:           &upstream.UnavailableError{API: "quotable", Err: errors.New("HTTP 503")},
			wantStatus:    http.StatusServiceUnavailable,
			wantCode:      "EXTERNAL_API_ERROR",
			wantCategory:  CategoryNerdy,
			wantTechnical: "External service quotable is currently unavailable",
		},
		{
			name:          "upstream 404 by keyword",
			err:           &upstream.ResponseError{API: "jokeapi", StatusCode: 404, Status: "Not Found"},
			wantStatus:    http.StatusNotFound,
			wantCode:      "NOT_FOUND",
			wantCategory:  CategoryMeme,
			wantTechnical: MsgNotFound,
		},
		{
			name:          "timeout keyword",
			err:           errors.New("dial tcp: i/o timeout"),
			wantStatus:    http.StatusRequestTimeout,
			wantCode:      "TIMEOUT_ERROR",
			wantCategory:  CategoryGaming,
			wantTechnical: MsgTimeout,
		},
		{
			name:          "rate limit keyword",
			err:           errors.New("HTTP 429: Too Many Requests"),
			wantStatus:    http.StatusTooManyRequests,
			wantCode:      "RATE_LIMIT_EXCEEDED",
			wantCategory:  CategoryChill,
			wantTechnical: MsgRateLimited,
		},
		{
			name:          "invalid keyword",
			err:           errors.New("invalid character 'x' looking for beginning of value"),
			wantStatus:    http.StatusBadRequest,
			wantCode:      "VALIDATION_ERROR",
			wantCategory:  CategorySarcastic,
			wantTechnical: "invalid character 'x' looking for beginning of value",
		},
		{
			name:          "anything else is internal with secrets masked",
			err:           errors.New("pq: password authentication failed for postgres://app:hunter2@db"),
			wantStatus:    http.StatusInternalServerError,
			wantCode:      "INTERNAL_ERROR",
			wantCategory:  CategoryChaotic,
			wantTechnical: "pq: password authentication failed for postgres://app:****@db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Dispatch(rec, httptest.NewRequest(http.MethodGet, "/api/test", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantCategory, env.Error.Category)
			assert.Equal(t, quirkyLines[tt.wantCategory][0]+" (Error: "+tt.wantTechnical+")", env.Error.Message)
			assert.NotContains(t, rec.Body.String(), "hunter2")
		})
	}
}

func TestFail_RateLimited(t *testing.T) {
	firstLine(t)
	rec := httptest.NewRecorder()
	Fail(rec, httptest.NewRequest(http.MethodPost, "/api/compliment", nil), KindRateLimited, MsgRateLimited)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", env.Error.Code)
	assert.Equal(t, "No worries, just a small hiccup. Take a deep breath. (Error: Too many requests. Please slow down!)", env.Error.Message)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowed(rec, http.MethodGet, http.MethodPost)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "METHOD_NOT_ALLOWED", env.Error.Code)
	assert.Equal(t, CategorySarcastic, env.Error.Category)
	assert.Equal(t, "Method not allowed. Allowed methods: GET, POST", env.Error.Message)
}

func TestQuirkyMessage(t *testing.T) {
	for category, lines := range quirkyLines {
		msg := QuirkyMessage(category, "boom")
		require.True(t, strings.HasSuffix(msg, " (Error: boom)"), msg)
		assert.Contains(t, lines, strings.TrimSuffix(msg, " (Error: boom)"))
	}

	msg := QuirkyMessage("unknown", "boom")
	assert.Contains(t, quirkyLines[CategoryChaotic], strings.TrimSuffix(msg, " (Error: boom)"))
}

func TestClassify_Nil(t *testing.T) {
	kind, msg := Classify(nil)
	assert.Equal(t, KindInternal, kind)
	assert.Equal(t, MsgInternal, msg)
}
