package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/httpmetrics"
	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	cleanup  *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		cleanup:  time.NewTicker(constants.RateLimitCleanupInterval),
		done:     make(chan struct{}),
	}

	go rl.cleanupLimiters()

	return rl
}

func (rl *RateLimiter) cleanupLimiters() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanup.C:
			rl.mu.Lock()
			for key, limiter := range rl.limiters {
				if limiter.Tokens() >= float64(rl.burst) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		limiter, exists = rl.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[key] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanup.Stop()
		close(rl.done)
	})
}

// ForumRateLimiter applies a strict bucket to the credential endpoints and a
// looser one to everything else. A limiter configured with a non-positive
// rate is disabled.
type ForumRateLimiter struct {
	auth    *RateLimiter
	general *RateLimiter
}

func NewForumRateLimiter(authRate float64, authBurst int, generalRate float64, generalBurst int) *ForumRateLimiter {
	frl := &ForumRateLimiter{}
	if authRate > 0 {
		frl.auth = NewRateLimiter(authRate, authBurst)
	}
	if generalRate > 0 {
		frl.general = NewRateLimiter(generalRate, generalBurst)
	}
	return frl
}

func (frl *ForumRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter, limiterType := frl.general, "general"
		if strings.HasPrefix(r.URL.Path, "/auth/") {
			limiter, limiterType = frl.auth, "auth"
		}

		if limiter != nil && !limiter.Allow(GetClientIP(r)) {
			metrics.RateLimitBlocked.WithLabelValues(httpmetrics.RouteLabel(r), limiterType).Inc()
			WriteError(w, http.StatusTooManyRequests, commonerrors.ErrRateLimited.Message())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (frl *ForumRateLimiter) Stop() {
	if frl.auth != nil {
		frl.auth.Stop()
	}
	if frl.general != nil {
		frl.general.Stop()
	}
}
