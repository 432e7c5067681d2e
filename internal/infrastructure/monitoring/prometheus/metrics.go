// Package prometheus defines the service's metrics. All collectors are
// registered against an injected Registerer so tests can use an isolated
// registry.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "procurelens"

// Metrics holds every collector the service records.
type Metrics struct {
	// AnalysesTotal counts completed analyses by producing path ("ai" or
	// "heuristic").
	AnalysesTotal *prometheus.CounterVec

	// AnalysisFallbacks counts AI-path failures recovered by the heuristic
	// pipeline.
	AnalysisFallbacks prometheus.Counter

	// AnalysisDuration observes end-to-end analysis latency in seconds.
	AnalysisDuration prometheus.Histogram

	// CacheHits and CacheMisses count result cache lookups.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// EventsPublished counts analysis completion events by outcome.
	EventsPublished *prometheus.CounterVec

	// HTTPRequestsTotal and HTTPRequestDuration instrument the API surface.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers all collectors with reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed contract analyses by analysis method.",
		}, []string{"method"}),
		AnalysisFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_fallbacks_total",
			Help:      "Analyses that fell back from the AI path to the heuristic pipeline.",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end contract analysis duration.",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_cache_hits_total",
			Help:      "Analysis result cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_cache_misses_total",
			Help:      "Analysis result cache misses.",
		}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Analysis completion events by publish outcome.",
		}, []string{"outcome"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}
