package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "specter_http_requests_total",
		Help: "HTTP requests processed, by method, route pattern, and status class.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "specter_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// WithMetrics records request count and latency. The path label uses the
// chi route pattern, not the raw URL, to keep cardinality bounded.
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			httpRequestDuration.WithLabelValues(r.Method, routePattern(r)).Observe(v)
		}))
		defer timer.ObserveDuration()

		next.ServeHTTP(rec, r)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern(r), statusClass(rec.status)).Inc()
	})
}

// routePattern is only populated after routing, so it must be read after
// next.ServeHTTP or from a mounted position.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
