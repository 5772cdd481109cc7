package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"quirkit/internal/handler/http/respond"
)

// Timeout bounds the whole request. When duration passes first, the client
// gets a TIMEOUT_ERROR envelope, the handler's context is canceled and its
// later writes are dropped.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutResponseWriter{ResponseWriter: w, header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				tw.flush()
			case <-ctx.Done():
				tw.mu.Lock()
				tw.timedOut = true
				tw.mu.Unlock()
				respond.Fail(w, r, respond.KindTimeout, respond.MsgTimeout)
			}
		})
	}
}

// timeoutResponseWriter buffers the handler's response until it finishes so
// a late handler can never interleave with the timeout envelope.
type timeoutResponseWriter struct {
	http.ResponseWriter

	mu       sync.Mutex
	header   http.Header
	code     int
	body     []byte
	timedOut bool
}

func (w *timeoutResponseWriter) Header() http.Header {
	return w.header
}

func (w *timeoutResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut || w.code != 0 {
		return
	}
	w.code = statusCode
}

func (w *timeoutResponseWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if w.code == 0 {
		w.code = http.StatusOK
	}
	w.body = append(w.body, data...)
	return len(data), nil
}

func (w *timeoutResponseWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	dst := w.ResponseWriter.Header()
	for k, v := range w.header {
		dst[k] = v
	}
	if w.code == 0 {
		w.code = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(w.code)
	_, _ = w.ResponseWriter.Write(w.body)
}
