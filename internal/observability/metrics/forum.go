package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ForumRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_requests_total",
			Help: "Total number of forum API requests",
		},
		[]string{"method", "route"},
	)

	ForumRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "forum_requests_in_flight",
			Help: "Number of forum API requests currently being processed",
		},
	)

	ForumRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forum_request_duration_seconds",
			Help:    "Duration of forum API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	AccountsRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_accounts_registered_total",
			Help: "Total number of accounts created by kind",
		},
		[]string{"kind"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_login_attempts_total",
			Help: "Total number of login attempts by kind and result",
		},
		[]string{"kind", "result"},
	)

	PostsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_posts_created_total",
			Help: "Total number of posts created",
		},
	)

	CommentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_comments_created_total",
			Help: "Total number of comments created",
		},
	)

	ResourcesDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_resources_deleted_total",
			Help: "Total number of deleted resources by type",
		},
		[]string{"resource"},
	)
)
