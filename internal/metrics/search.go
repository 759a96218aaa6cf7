package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchPlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pgsearch",
			Name:      "search_plans_total",
			Help:      "Total number of compiled search plans",
		},
		[]string{"scope", "mode"}, // mode: "simple" / "aggregate"
	)

	SearchQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pgsearch",
			Name:      "search_query_duration_seconds",
			Help:      "Search query execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"scope"},
	)

	SearchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pgsearch",
			Name:      "search_errors_total",
			Help:      "Total search failures",
		},
		[]string{"scope", "error_type"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchPlansTotal)
	prometheus.MustRegister(SearchQueryDuration)
	prometheus.MustRegister(SearchErrorsTotal)
	searchMetricsRegistered = true
}

// PlanMode labels a compiled plan for metrics.
func PlanMode(grouped bool) string {
	if grouped {
		return "aggregate"
	}
	return "simple"
}
