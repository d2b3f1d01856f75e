package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AggregateComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "railpick", Name: "aggregate_computations_total", Help: "Number of full aggregate computations by outcome."},
		[]string{"outcome"},
	)
	AggregateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "railpick", Name: "aggregate_computation_seconds", Help: "Wall time of one full aggregate computation.", Buckets: prometheus.DefBuckets},
	)
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "railpick", Name: "bundle_cache_hits_total", Help: "Dashboard requests served from the bundle cache."},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "railpick", Name: "bundle_cache_misses_total", Help: "Dashboard reads that found the cache slot stale or empty."},
	)
	CacheInvalidations = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "railpick", Name: "bundle_cache_invalidations_total", Help: "Manual refresh actions invalidating the bundle cache."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "railpick", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "railpick", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AggregateComputations)
	reg.MustRegister(AggregateDuration)
	reg.MustRegister(CacheHits)
	reg.MustRegister(CacheMisses)
	reg.MustRegister(CacheInvalidations)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
