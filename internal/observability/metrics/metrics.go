// Package metrics provides the Prometheus collectors for the fridgechef backend.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors, registered on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	IngredientsEstimated *prometheus.CounterVec
	VideoRankings        prometheus.Counter
	VideoRankFallbacks   prometheus.Counter
	CacheLookups         *prometheus.CounterVec
	VideoSearchRequests  *prometheus.CounterVec
	VideoSearchDuration  prometheus.Histogram
	HTTPRequests         *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.IngredientsEstimated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fridgechef_ingredients_estimated_total",
		Help: "Ingredient lines estimated, by data quality.",
	}, []string{"quality"})

	m.VideoRankings = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fridgechef_video_rankings_total",
		Help: "Total number of video ranking runs.",
	})

	m.VideoRankFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fridgechef_video_rank_fallbacks_total",
		Help: "Ranking runs where no eligible candidate scored above zero.",
	})

	m.CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fridgechef_cache_lookups_total",
		Help: "Cache lookups, by result.",
	}, []string{"result"})

	m.VideoSearchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fridgechef_video_search_requests_total",
		Help: "Video platform search requests, by outcome.",
	}, []string{"outcome"})

	m.VideoSearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fridgechef_video_search_duration_seconds",
		Help:    "Duration of video platform searches in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	m.HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fridgechef_http_requests_total",
		Help: "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})

	collectors := []prometheus.Collector{
		m.IngredientsEstimated,
		m.VideoRankings,
		m.VideoRankFallbacks,
		m.CacheLookups,
		m.VideoSearchRequests,
		m.VideoSearchDuration,
		m.HTTPRequests,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return m, nil
}

// Registry returns the private registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveIngredient counts one estimated ingredient line
func (m *Metrics) ObserveIngredient(quality string) {
	if m == nil {
		return
	}
	m.IngredientsEstimated.WithLabelValues(quality).Inc()
}

// ObserveRanking counts one ranking run and whether it hit the zero-score fallback
func (m *Metrics) ObserveRanking(fallback bool) {
	if m == nil {
		return
	}
	m.VideoRankings.Inc()
	if fallback {
		m.VideoRankFallbacks.Inc()
	}
}

// ObserveCacheLookup counts a cache hit or miss
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveVideoSearch records the outcome and latency of a platform search
func (m *Metrics) ObserveVideoSearch(err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.VideoSearchRequests.WithLabelValues(outcome).Inc()
	m.VideoSearchDuration.Observe(duration.Seconds())
}

// ObserveHTTPRequest counts a served HTTP request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
