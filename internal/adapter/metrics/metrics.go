package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	FeedEventsTotal *prometheus.CounterVec

	MerchantCacheHits   prometheus.Counter
	MerchantCacheMisses prometheus.Counter
}

// New initializes and registers the Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraudlens",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fraudlens",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		FeedEventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraudlens",
			Subsystem: "feed",
			Name:      "events_total",
			Help:      "Total number of consumed feed events by kind and status.",
		}, []string{"kind", "status"}), // status: applied, rejected, error
		MerchantCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fraudlens",
			Subsystem: "directory",
			Name:      "merchant_cache_hits_total",
			Help:      "Total number of merchant directory cache hits.",
		}),
		MerchantCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fraudlens",
			Subsystem: "directory",
			Name:      "merchant_cache_misses_total",
			Help:      "Total number of merchant directory cache misses.",
		}),
	}
}
