package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// scoring service.
type Metrics struct {
	ScoreRuns         prometheus.Counter
	ScoreDuration     prometheus.Histogram
	CountiesLoaded    prometheus.Gauge
	CountiesServed    prometheus.Histogram
	DegenerateFactors prometheus.Counter

	// Result cache metrics.
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}

	// Export metrics.
	ExportRows *prometheus.CounterVec // labels: sink={csv,postgres}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ScoreRuns,
		m.ScoreDuration,
		m.CountiesLoaded,
		m.CountiesServed,
		m.DegenerateFactors,
		m.CacheLookups,
		m.ExportRows,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ScoreRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "golf_explorer",
			Name:      "score_runs_total",
			Help:      "Total full scoring pipeline executions.",
		}),
		ScoreDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "golf_explorer",
			Name:      "score_duration_seconds",
			Help:      "Duration of a complete score-filter-aggregate run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CountiesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "golf_explorer",
			Name:      "counties_loaded",
			Help:      "Number of county records in the loaded dataset snapshot.",
		}),
		CountiesServed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "golf_explorer",
			Name:      "counties_served",
			Help:      "Number of counties surviving the filter per request.",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 2000, 3200},
		}),
		DegenerateFactors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "golf_explorer",
			Name:      "degenerate_factors_total",
			Help:      "Zero-variance factor columns encountered during scoring.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golf_explorer",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
		ExportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golf_explorer",
			Name:      "export_rows_total",
			Help:      "Rows written to export sinks by sink type.",
		}, []string{"sink"}),
	}
}
