package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/timetravel/internal/middleware"
)

// TestRecoverer_panicBecomesJSON500 verifies that a panicking handler yields
// the usual error body and that the panic is logged, not echoed.
func TestRecoverer_panicBecomesJSON500(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.NewRecoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("repo exploded")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/travels", nil))
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"description":"internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "repo exploded")
	assert.Contains(t, buf.String(), "repo exploded")
}

func TestRecoverer_abortHandlerIsReraised(t *testing.T) {
	h := middleware.NewRecoverer(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/travels", nil))
	})
}

func TestRecoverer_noPanicPassesThrough(t *testing.T) {
	h := middleware.NewRecoverer(slog.New(slog.DiscardHandler))(trivialHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/travels", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
