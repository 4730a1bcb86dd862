// Package metrics holds the Prometheus collectors for the recommendation service.
// Collectors are registered on the default registry and served from /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gap skip reasons.
const (
	SkipEmptyQuery = "empty_query"
	SkipRankError  = "rank_error"
)

var (
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mora_recommend_requests_total",
			Help: "Recommendation requests by outcome (ok, empty, unavailable, cached)",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "mora_recommend_duration_seconds",
			Help: "Time spent computing recommendations for one profile",
			// ranking is in-memory; most requests finish well under a millisecond
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	RecommendItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mora_recommend_items",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	GapSkips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mora_recommend_gap_skips_total",
			Help: "Skill gaps that contributed no candidates because of an encoding or ranking problem",
		},
		[]string{"reason"},
	)

	CorpusCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mora_corpus_courses",
			Help: "Courses in the loaded corpus index (0 when unavailable)",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mora_cache_lookups_total",
			Help: "Recommendation cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mora_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

func ObserveRecommendation(outcome string, items int, d time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendItems.Observe(float64(items))
	RecommendDuration.Observe(d.Seconds())
}
