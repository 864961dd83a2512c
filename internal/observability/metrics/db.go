package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DBConnections is labelled by backend (postgres, sqlite) and state
	// (acquired, idle, max, total).
	DBConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "forum_db_connections",
			Help: "Database connections by backend and state",
		},
		[]string{"backend", "state"},
	)

	DBQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forum_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation", "table", "error_type"},
	)
)
