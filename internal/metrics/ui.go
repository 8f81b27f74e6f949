package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search UI Prometheus metrics.
var (
	SearchOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facetview",
			Name:      "search_ops_total",
			Help:      "Total orchestrated search operations",
		},
		[]string{"op", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "facetview",
			Name:      "backend_request_duration_seconds",
			Help:      "Search backend request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op"},
	)

	RenderItemErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facetview",
			Name:      "render_item_errors_total",
			Help:      "Theme override failures isolated per rendered item",
		},
		[]string{"point", "theme"},
	)

	ThemeActivationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facetview",
			Name:      "theme_activations_total",
			Help:      "Total theme activations",
		},
		[]string{"theme"},
	)

	StaleResponsesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facetview",
			Name:      "stale_responses_total",
			Help:      "Backend responses discarded because a newer request was issued",
		},
	)
)

// RegisterUIMetrics registers the search UI metrics explicitly (no init()).
func RegisterUIMetrics() {
	prometheus.MustRegister(
		SearchOpsTotal,
		BackendRequestDuration,
		RenderItemErrorsTotal,
		ThemeActivationsTotal,
		StaleResponsesTotal,
	)
}
