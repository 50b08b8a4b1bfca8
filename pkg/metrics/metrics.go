// Package metrics provides the Prometheus collectors for directory operations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/bizz/pkg/middleware"
)

// Metrics holds the collectors registered for the service.
type Metrics struct {
	registry *prometheus.Registry

	Classifications  *prometheus.CounterVec
	ListingMutations *prometheus.CounterVec
	ReviewsFlagged   prometheus.Counter
	ReviewDecisions  *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// New creates a Metrics instance with every collector registered on a
// dedicated registry alongside the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bizz_location_classifications_total",
			Help: "Total number of city classifications by context and confidence",
		}, []string{"context", "confidence"}),
		ListingMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bizz_listing_mutations_total",
			Help: "Total number of listing mutations by operation",
		}, []string{"operation"}),
		ReviewsFlagged: factory.NewCounter(prometheus.CounterOpts{
			Name: "bizz_listings_flagged_for_review_total",
			Help: "Total number of listing writes that required admin location review",
		}),
		ReviewDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bizz_location_review_decisions_total",
			Help: "Total number of admin location review decisions by action",
		}, []string{"action"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bizz_cache_lookups_total",
			Help: "Total number of cache lookups by result",
		}, []string{"result"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bizz_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "status"}),
	}
}

// Handler returns the scrape endpoint for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveClassification records a classifier outcome.
func (m *Metrics) ObserveClassification(context, confidence string) {
	m.Classifications.WithLabelValues(context, confidence).Inc()
}

// ObserveMutation records a listing create, update, or delete.
func (m *Metrics) ObserveMutation(operation string) {
	m.ListingMutations.WithLabelValues(operation).Inc()
}

// ObserveFlagged records a listing write that needs admin review.
func (m *Metrics) ObserveFlagged() {
	m.ReviewsFlagged.Inc()
}

// ObserveDecision records an admin review decision.
func (m *Metrics) ObserveDecision(action string) {
	m.ReviewDecisions.WithLabelValues(action).Inc()
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Middleware records request durations by method and status.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := middleware.NewRecorder(w)
			next.ServeHTTP(rec, r)
			m.RequestDuration.
				WithLabelValues(r.Method, strconv.Itoa(rec.Status)).
				Observe(time.Since(start).Seconds())
		})
	}
}
