// Package metrics provides Prometheus metrics for the storage adapter and
// the admin server.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation results recorded against storeOperationsTotal.
const (
	ResultOK    = "ok"
	ResultMiss  = "miss"
	ResultError = "error"
)

var (
	// Store operation metrics
	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oauthstore_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"collection", "operation", "result"},
	)

	storeOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oauthstore_operation_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection", "operation"},
	)

	// Admin HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oauthstore_http_requests_total",
			Help: "Total number of admin HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oauthstore_http_request_duration_seconds",
			Help:    "Admin HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// ObserveStoreOp records one store operation with its outcome and duration.
func ObserveStoreOp(collection, operation, result string, duration time.Duration) {
	storeOperationsTotal.WithLabelValues(collection, operation, result).Inc()
	storeOperationDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath normalizes the path for metrics to avoid high cardinality.
func normalizePath(path string) string {
	knownPaths := []string{
		"/healthz",
		"/readyz",
		"/metrics",
		"/clients",
		"/users",
	}

	for _, known := range knownPaths {
		if path == known {
			return path
		}
	}

	// Client lookups carry the id in the path
	if strings.HasPrefix(path, "/clients/") {
		return "/clients/{id}"
	}

	// Normalize unknown paths to prevent high cardinality
	return "/other"
}
