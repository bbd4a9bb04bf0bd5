package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exchange_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_submissions_total",
			Help: "Total number of gift card submissions",
		},
		[]string{"card_type", "result"},
	)

	ReviewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_reviews_total",
			Help: "Total number of admin review decisions",
		},
		[]string{"status"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	RateCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_registry_cache_hits_total",
			Help: "Registry cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSubmission(cardType, result string) {
	SubmissionsTotal.WithLabelValues(cardType, result).Inc()
}

func RecordReview(status string) {
	ReviewsTotal.WithLabelValues(status).Inc()
}

func RecordLogin(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}

func RecordCacheLookup(outcome string) {
	RateCacheHitsTotal.WithLabelValues(outcome).Inc()
}
