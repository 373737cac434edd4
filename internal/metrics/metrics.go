package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	AchievementAwards prometheus.Counter
	XPAwarded         prometheus.Counter
	CacheHits         *prometheus.CounterVec
	CacheMisses       *prometheus.CounterVec
}

// New registers all collectors on the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lingolens_http_requests_total",
			Help: "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lingolens_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		AchievementAwards: factory.NewCounter(prometheus.CounterOpts{
			Name: "lingolens_achievement_awards_total",
			Help: "Achievements newly awarded.",
		}),
		XPAwarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "lingolens_xp_awarded_total",
			Help: "Total XP granted across all users.",
		}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lingolens_cache_hits_total",
			Help: "Cache hits by category.",
		}, []string{"category"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lingolens_cache_misses_total",
			Help: "Cache misses by category.",
		}, []string{"category"}),
	}
}

// CacheHit implements cache.Recorder
func (m *Metrics) CacheHit(category string) {
	m.CacheHits.WithLabelValues(category).Inc()
}

// CacheMiss implements cache.Recorder
func (m *Metrics) CacheMiss(category string) {
	m.CacheMisses.WithLabelValues(category).Inc()
}
