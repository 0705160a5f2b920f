package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/timetravel/internal/middleware"
)

func serveLogged(t *testing.T, status int, body string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/travels", nil)

	// Simulate what chimiddleware.RequestID does: inject a known ID into context.
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Code)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	return logEntry
}

// TestSlogLogger_logsRequestFields verifies that the SlogLogger middleware
// writes a structured JSON log line containing method, path, status, size,
// duration, and the request ID placed in context by chi's RequestID middleware.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	logEntry := serveLogged(t, http.StatusOK, `{"content":[]}`)

	require.Equal(t, "INFO", logEntry["level"])
	require.Equal(t, "GET", logEntry["method"])
	require.Equal(t, "/v1/travels", logEntry["path"])
	require.EqualValues(t, http.StatusOK, logEntry["status"])
	require.EqualValues(t, len(`{"content":[]}`), logEntry["bytes"])
	require.Equal(t, "test-req-id", logEntry["request_id"])
	require.NotNil(t, logEntry["duration_ms"])
	require.NotEmpty(t, logEntry["remote_addr"])
}

func TestSlogLogger_serverErrorLoggedAtErrorLevel(t *testing.T) {
	logEntry := serveLogged(t, http.StatusInternalServerError, "")

	assert.Equal(t, "ERROR", logEntry["level"])
	assert.EqualValues(t, http.StatusInternalServerError, logEntry["status"])
}

func TestSlogLogger_clientErrorStaysAtInfo(t *testing.T) {
	logEntry := serveLogged(t, http.StatusConflict, "")

	assert.Equal(t, "INFO", logEntry["level"])
}
