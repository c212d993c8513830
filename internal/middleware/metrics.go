package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordvault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordvault_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	lookupCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordvault_lookup_calls_total",
			Help: "Total number of dictionary lookup calls",
		},
		[]string{"status"},
	)

	importedWordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordvault_imported_words_total",
			Help: "Total number of words processed by the import pipeline",
		},
		[]string{"outcome"},
	)
)

// Metrics records request count and latency per route pattern. The pattern
// (not the raw path) is used as the label so ids do not blow up cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := strconv.Itoa(ww.Status())
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordLookup counts one dictionary lookup by outcome.
func RecordLookup(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	lookupCallsTotal.WithLabelValues(status).Inc()
}

// RecordImportedWord counts one import-pipeline token by outcome
// ("imported", "duplicate" or "failed").
func RecordImportedWord(outcome string) {
	importedWordsTotal.WithLabelValues(outcome).Inc()
}
