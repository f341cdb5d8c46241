package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lynquer",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lynquer",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	SessionsIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lynquer",
		Name:      "sessions_issued_total",
		Help:      "Session tokens issued, by trigger.",
	}, []string{"via"})

	// Token purger metrics

	TokensPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lynquer",
		Name:      "reset_tokens_purged_total",
		Help:      "Expired reset tokens removed by the purger.",
	})

	PurgeCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lynquer",
		Name:      "purge_cycle_duration_seconds",
		Help:      "Time taken for one token purge cycle.",
		Buckets:   prometheus.DefBuckets,
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		SessionsIssuedTotal,
		TokensPurgedTotal,
		PurgeCycleDuration,
	)
}
