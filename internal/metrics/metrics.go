// Package metrics exposes Prometheus collectors for the HTTP API and the note
// version history.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"notemaker-server/internal/domain"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notemaker_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notemaker_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	versionsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notemaker_note_versions_appended_total",
		Help: "Versions recorded by operation (update, restore)",
	}, []string{"operation"})

	versionsEvicted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notemaker_note_versions_evicted_total",
		Help: "Versions dropped from the front of a full history",
	}, []string{"operation"})

	summaryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notemaker_summary_cache_lookups_total",
		Help: "Summary cache lookups by result (hit, miss, error)",
	}, []string{"result"})
)

// ObserveLedger records what an update or restore did to a note's history.
func ObserveLedger(operation string, change domain.LedgerChange) {
	if change.Appended {
		versionsAppended.WithLabelValues(operation).Inc()
	}
	if change.Evicted > 0 {
		versionsEvicted.WithLabelValues(operation).Add(float64(change.Evicted))
	}
}

func ObserveSummaryCache(result string) {
	summaryCacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware labels requests with the matched route template so ids in paths
// do not explode label cardinality.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
