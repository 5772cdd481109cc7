package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_RecordsStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)

	assert.Equal(t, http.StatusOK, rw.StatusCode())
	assert.False(t, rw.HeaderWritten())

	rw.WriteHeader(http.StatusTooManyRequests)
	rw.WriteHeader(http.StatusInternalServerError)
	n, err := rw.Write([]byte(`{"success":false}`))

	assert.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Equal(t, http.StatusTooManyRequests, rw.StatusCode())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 17, rw.BytesWritten())
	assert.True(t, rw.HeaderWritten())
}

func TestWrap_ImplicitOK(t *testing.T) {
	rw := Wrap(httptest.NewRecorder())
	_, _ = rw.Write([]byte("ok"))
	assert.Equal(t, http.StatusOK, rw.StatusCode())
	assert.True(t, rw.HeaderWritten())
}

func TestWrap_Idempotent(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)
	assert.Same(t, rw, Wrap(rw))
	assert.Equal(t, rec, rw.Unwrap())
}
