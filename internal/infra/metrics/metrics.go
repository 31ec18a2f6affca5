package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks logical API requests by resource and final status
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigscan_api_requests_total",
			Help: "Total number of logical API requests",
		},
		[]string{"resource", "status"},
	)

	// AttemptsTotal tracks individual HTTP attempts, retries included
	AttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigscan_api_attempts_total",
			Help: "Total number of HTTP attempts",
		},
		[]string{"resource", "outcome"},
	)

	// RetriesTotal tracks scheduled retries
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigscan_api_retries_total",
			Help: "Total number of retries scheduled after a transient failure",
		},
		[]string{"resource"},
	)

	// RequestLatency tracks logical request latency, backoff included
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tigscan_api_request_latency_seconds",
			Help:    "Logical API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	// ValidationErrorsTotal tracks payloads rejected by the schema layer
	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigscan_validation_errors_total",
			Help: "Total number of responses that failed schema validation",
		},
		[]string{"resource"},
	)

	// CacheLookupsTotal tracks response cache lookups
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigscan_cache_lookups_total",
			Help: "Total number of response cache lookups",
		},
		[]string{"backend", "result"},
	)

	// PagesLoaded tracks pages accumulated by infinite lists
	PagesLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tigscan_pager_pages_loaded_total",
			Help: "Total number of pages loaded by infinite lists",
		},
		[]string{"query"},
	)

	// PagerItems tracks the number of items currently held by an infinite list
	PagerItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tigscan_pager_items",
			Help: "Items currently accumulated by an infinite list",
		},
		[]string{"query"},
	)
)
