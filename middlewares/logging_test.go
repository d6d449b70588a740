package middlewares_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft/middlewares"
	"github.com/dmitrymomot/hyraft/pkg/logger"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"client error", http.StatusNotFound, "WARN"},
		{"server error", http.StatusBadGateway, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log, err := logger.New(logger.WithOutput(&buf))
			require.NoError(t, err)

			h := middlewares.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/items?x=1", nil))

			var rec map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
			assert.Equal(t, "request", rec["msg"])
			assert.Equal(t, tt.level, rec["level"])
			assert.Equal(t, "POST", rec["method"])
			assert.Equal(t, "/items", rec["path"])
			assert.InDelta(t, tt.status, rec["status"], 0)
			assert.InDelta(t, 4, rec["size"], 0)
		})
	}

	t.Run("skipped paths", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log, err := logger.New(logger.WithOutput(&buf))
		require.NoError(t, err)

		h := middlewares.Logging(log, middlewares.WithSkipPaths("/health"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Empty(t, buf.String())
	})
}
