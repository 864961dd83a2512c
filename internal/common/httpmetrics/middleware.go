package httpmetrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

// unmatchedRoute labels requests no route claimed, so arbitrary paths
// cannot grow the label set.
const unmatchedRoute = "unmatched"

type Collector struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func New() *Collector {
	return &Collector{}
}

// Wrap records request count, in-flight gauge and latency. Installed as
// router middleware it labels by route template; around the not-found and
// method-not-allowed handlers it labels "unmatched".
func (c *Collector) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		method := r.Method
		route, ok := routeTemplate(r)
		if !ok {
			route = unmatchedRoute
		}

		metrics.ForumRequestsTotal.WithLabelValues(method, route).Inc()
		metrics.ForumRequestsInFlight.Inc()
		defer metrics.ForumRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		statusClass := fmt.Sprintf("%dxx", rec.status/100)
		metrics.ForumRequestDurationSeconds.WithLabelValues(method, route, statusClass).Observe(time.Since(start).Seconds())
	})
}
