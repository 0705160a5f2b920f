// Package metrics holds the Prometheus collectors of the Time Travel API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	TravelsCreated  prometheus.Counter
	TravelsDeleted  prometheus.Counter
	ParadoxesTotal  prometheus.Counter
	CacheLookups    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
// main passes prometheus.DefaultRegisterer; tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TravelsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "timetravel_travels_created_total",
			Help: "Total number of travels recorded",
		}),
		TravelsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "timetravel_travels_deleted_total",
			Help: "Total number of delete operations, including deletes of missing travels",
		}),
		ParadoxesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "timetravel_paradoxes_total",
			Help: "Total number of creates rejected because the traveler already traveled that date",
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "timetravel_cache_lookups_total",
			Help: "Travel cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "timetravel_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// CacheHit records a cache lookup that found an entry.
func (m *Metrics) CacheHit() { m.CacheLookups.WithLabelValues("hit").Inc() }

// CacheMiss records a cache lookup that found nothing.
func (m *Metrics) CacheMiss() { m.CacheLookups.WithLabelValues("miss").Inc() }

// CacheError records a cache lookup that failed.
func (m *Metrics) CacheError() { m.CacheLookups.WithLabelValues("error").Inc() }
