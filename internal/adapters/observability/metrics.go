package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "store_operations_total", Help: "Blob store reads/writes."},
		[]string{"backend", "op", "result"}, // result: hit|miss|ok|error
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog", Name: "store_operation_duration_seconds",
			Help:    "Blob store operation duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)
	ReviewSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "review_submissions_total", Help: "Review submissions by outcome."},
		[]string{"outcome"},
	)
	HelpfulVotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "helpful_votes_total", Help: "Helpful votes by outcome."},
		[]string{"outcome"},
	)
)

// InitRegistry registers every collector on a fresh registry.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, StoreOps, StoreLatency, ReviewSubmissions, HelpfulVotes)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveStore(backend, op, result string, dur time.Duration) {
	StoreOps.WithLabelValues(backend, op, result).Inc()
	StoreLatency.WithLabelValues(backend, op).Observe(dur.Seconds())
}

func ObserveReview(outcome string) { ReviewSubmissions.WithLabelValues(outcome).Inc() }

func ObserveVote(outcome string) { HelpfulVotes.WithLabelValues(outcome).Inc() }

// ReadResult labels a store read.
func ReadResult(ok bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case ok:
		return "hit"
	default:
		return "miss"
	}
}

// WriteResult labels a store write.
func WriteResult(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
