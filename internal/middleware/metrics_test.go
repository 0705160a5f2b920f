package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/timetravel/internal/metrics"
	"github.com/pkordes/timetravel/internal/middleware"
)

// sampleCount returns how many observations the request histogram holds
// for the given labels, or 0 when the series does not exist.
func sampleCount(t *testing.T, reg *prometheus.Registry, method, route, status string) uint64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	want := map[string]string{"method": method, "route": route, "status": status}
	for _, mf := range families {
		if mf.GetName() != "timetravel_http_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, want) {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	if len(m.GetLabel()) != len(want) {
		return false
	}
	for _, lp := range m.GetLabel() {
		if want[lp.GetName()] != lp.GetValue() {
			return false
		}
	}
	return true
}

func newInstrumentedRouter(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	api := chi.NewRouter()
	api.Route("/v1/travels", func(r chi.Router) {
		r.Get("/{travelId}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Delete("/{travelId}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	root := chi.NewRouter()
	root.Use(middleware.NewMetricsHandler(m.RequestDuration))
	root.Mount("/", api)
	return root, reg
}

// TestMetricsHandler_labelsByRoutePattern verifies that requests for different
// ids land in one series keyed by the route pattern, not the raw path.
func TestMetricsHandler_labelsByRoutePattern(t *testing.T) {
	h, reg := newInstrumentedRouter(t)

	for _, id := range []string{"5f8f8c44b54764421b7156c1", "5f8f8c44b54764421b7156c2"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/travels/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/travels/5f8f8c44b54764421b7156c1", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, uint64(2), sampleCount(t, reg, "GET", "/v1/travels/{travelId}", "200"))
	assert.Equal(t, uint64(1), sampleCount(t, reg, "DELETE", "/v1/travels/{travelId}", "204"))
}

func TestMetricsHandler_unknownPathIsUnmatched(t *testing.T) {
	h, reg := newInstrumentedRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/path", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, uint64(1), sampleCount(t, reg, "GET", "unmatched", "404"))
}
