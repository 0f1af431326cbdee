// Package prometheus exposes service metrics on an isolated registry.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the infradocs collectors. Each instance owns its registry,
// so tests never share state.
type Metrics struct {
	Registry *prometheus.Registry

	// Outbound GitHub requests
	FetchTotal           *prometheus.CounterVec
	FetchDurationSeconds *prometheus.HistogramVec

	// Response cache lookups
	CacheLookupsTotal *prometheus.CounterVec

	// Inbound HTTP requests
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec

	BuildInfo *prometheus.GaugeVec
}

// NewMetrics creates a Metrics instance with all collectors registered.
func NewMetrics(version string) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "infradocs_fetch_total",
				Help: "Total number of outbound fetches by kind and result.",
			},
			[]string{"kind", "result"},
		),
		FetchDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "infradocs_fetch_duration_seconds",
				Help:    "Duration of outbound fetches in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 11), // 10ms to ~10s
			},
			[]string{"kind"},
		),

		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "infradocs_cache_lookups_total",
				Help: "Total number of cache lookups by kind and result.",
			},
			[]string{"kind", "result"},
		),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "infradocs_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "infradocs_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),

		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "infradocs_info",
				Help: "Build information for the running instance.",
			},
			[]string{"version"},
		),
	}

	reg.MustRegister(
		m.FetchTotal,
		m.FetchDurationSeconds,
		m.CacheLookupsTotal,
		m.RequestsTotal,
		m.RequestDurationSeconds,
		m.BuildInfo,
	)

	m.BuildInfo.WithLabelValues(version).Set(1)

	return m
}

// Handler returns an http.Handler that serves the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveCache records a cache lookup. Its signature matches cache.Observer.
func (m *Metrics) ObserveCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(kind, result).Inc()
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// InstrumentHandler wraps an HTTP handler with request metrics. Requests are
// labelled by the ServeMux pattern that matched them, which keeps label
// cardinality bounded regardless of slugs.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(rec.status)
		m.RequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		m.RequestDurationSeconds.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}
