package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RateLimitBlocked counts rejected requests per route and limiter
	// ("auth" for /auth/*, "general" for everything else).
	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_rate_limit_blocked_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route", "limiter"},
	)

	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_domain_errors_total",
			Help: "Domain errors returned to clients by category and code",
		},
		[]string{"category", "code", "status"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_http_errors_total",
			Help: "Error responses by status, route and method",
		},
		[]string{"status", "route", "method"},
	)

	PanicsRecoveredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_http_panics_recovered_total",
			Help: "Handler panics turned into 500 responses",
		},
	)
)
