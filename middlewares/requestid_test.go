package middlewares_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft/middlewares"
	"github.com/dmitrymomot/hyraft/pkg/logger"
)

func captureID(t *testing.T, h func(http.Handler) http.Handler, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var got string
	rec := httptest.NewRecorder()
	h(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = middlewares.GetRequestID(r.Context())
	})).ServeHTTP(rec, req)
	return got, rec
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()
		id, rec := captureID(t, middlewares.RequestID(), httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("keeps an incoming id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "upstream-1")
		id, _ := captureID(t, middlewares.RequestID(), req)
		assert.Equal(t, "upstream-1", id)
	})

	t.Run("header priority", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "first")
		req.Header.Set("X-Correlation-ID", "second")
		id, _ := captureID(t, middlewares.RequestID(), req)
		assert.Equal(t, "first", id)
	})

	t.Run("oversized id is replaced", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", middlewares.MaxRequestIDLength+1))
		id, _ := captureID(t, middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "gen" })), req)
		assert.Equal(t, "gen", id)
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace", "t-1")
		mw := middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Trace"),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		)
		id, rec := captureID(t, mw, req)
		assert.Equal(t, "t-1", id)
		assert.Equal(t, "t-1", rec.Header().Get("X-Trace"))
	})

	t.Run("missing id is empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, middlewares.GetRequestID(context.Background()))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatText),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)
	require.NoError(t, err)

	log.InfoContext(middlewares.WithRequestID(context.Background(), "abc"), "hello")
	log.InfoContext(context.Background(), "bare")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "request_id=abc")
	assert.NotContains(t, lines[1], "request_id")
}
