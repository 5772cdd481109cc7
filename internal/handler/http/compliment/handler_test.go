package compliment_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirkit/internal/domain/entity"
	handler "quirkit/internal/handler/http/compliment"
	"quirkit/internal/infra/adapter/persistence/memory"
	"quirkit/internal/usecase/compliment"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code     string `json:"code"`
		Message  string `json:"message"`
		Category string `json:"category"`
	} `json:"error"`
}

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	svc, err := compliment.NewService(nil, memory.NewComplimentRepo(),
		[]entity.Compliment{{ID: "fallback-1", Message: "You are doing great!", Sender: "Quirkit"}},
		compliment.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		compliment.WithClock(func() time.Time { return fixedNow }),
		compliment.WithIDGenerator(func() string { return "c-1" }),
		compliment.WithRand(func(int) int { return 0 }),
	)
	require.NoError(t, err)

	mux := http.NewServeMux()
	handler.Register(mux, svc)
	return mux
}

func do(t *testing.T, mux http.Handler, method, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/api/compliment", strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, "/api/compliment", nil)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestCompliment_RandomFallsBackToPool(t *testing.T) {
	rec, env := do(t, newMux(t), http.MethodGet, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"You are doing great!","sender":"Quirkit","timestamp":1773489600000,"source":"fallback"}`, string(env.Data))
}

func TestCompliment_SubmitThenRandom(t *testing.T) {
	mux := newMux(t)

	rec, env := do(t, mux, http.MethodPost, `{"message":"  You write lovely code  ","sender":"Sam"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"message":"Compliment sent successfully!","complimentId":"c-1","isApproved":true,"needsModeration":false}`, string(env.Data))

	_, env = do(t, mux, http.MethodGet, "")
	var got compliment.RandomResult
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "You write lovely code", got.Message)
	assert.Equal(t, compliment.SourceMemory, got.Source)
}

func TestCompliment_ProfanityNeedsModeration(t *testing.T) {
	mux := newMux(t)

	rec, env := do(t, mux, http.MethodPost, `{"message":"you are damn cool","sender":"Sam"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var got compliment.SubmitResult
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.IsApproved)
	assert.True(t, got.NeedsModeration)

	_, env = do(t, mux, http.MethodGet, "")
	assert.Contains(t, string(env.Data), `"source":"fallback"`, "unapproved compliments are never served")
}

func TestCompliment_SubmitRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing message", body: `{"sender":"Sam"}`},
		{name: "missing sender", body: `{"message":"hi"}`},
		{name: "message too long", body: `{"message":"` + strings.Repeat("a", entity.MaxComplimentMessageRunes+1) + `","sender":"Sam"}`},
		{name: "sender too long", body: `{"message":"hi","sender":"` + strings.Repeat("b", entity.MaxComplimentSenderRunes+1) + `"}`},
		{name: "malformed JSON", body: `{"message":`},
		{name: "wrong type", body: `{"message":42,"sender":"Sam"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, newMux(t), http.MethodPost, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		})
	}
}

func TestCompliment_MethodNotAllowed(t *testing.T) {
	rec, env := do(t, newMux(t), http.MethodDelete, "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	require.NotNil(t, env.Error)
	assert.Equal(t, "METHOD_NOT_ALLOWED", env.Error.Code)
}
