package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(log *logger.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				log.WithFields(r.Context(), logger.Fields{"action": "health"}).Warnf("database ping failed: %v", err)
				WriteData(w, http.StatusServiceUnavailable, "database unavailable", map[string]string{"status": "degraded"})
				return
			}
		}
		WriteData(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
	}
}
