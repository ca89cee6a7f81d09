// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests handled.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"method", "path"})

	// RecommendDuration observes end-to-end recommendation latency,
	// excluding cache hits.
	RecommendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_duration_seconds",
		Help:    "Recommendation engine latency in seconds.",
		Buckets: []float64{.0001, .001, .01, .05, .1, .5, 1},
	})

	// CacheHits counts recommendation responses served from cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommend_cache_hits_total",
		Help: "Recommendation responses served from cache.",
	})

	// CacheMisses counts recommendation requests that reached the engine.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommend_cache_misses_total",
		Help: "Recommendation requests that missed the cache.",
	})
)
