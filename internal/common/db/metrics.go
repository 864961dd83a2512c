package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

type connStats struct {
	acquired, idle, max, total float64
}

// StartPoolMetrics samples pool stats every interval until ctx is done or
// the returned stop func is called. stop waits for the sampler to exit.
func StartPoolMetrics(ctx context.Context, pool *pgxpool.Pool, interval time.Duration) (stop func()) {
	return startConnMetrics(ctx, BackendPostgres, interval, func() connStats {
		s := pool.Stat()
		return connStats{
			acquired: float64(s.AcquiredConns()),
			idle:     float64(s.IdleConns()),
			max:      float64(s.MaxConns()),
			total:    float64(s.TotalConns()),
		}
	})
}

func StartSQLiteMetrics(ctx context.Context, conn *sqlx.DB, interval time.Duration) (stop func()) {
	return startConnMetrics(ctx, BackendSQLite, interval, func() connStats {
		s := conn.Stats()
		return connStats{
			acquired: float64(s.InUse),
			idle:     float64(s.Idle),
			max:      float64(s.MaxOpenConnections),
			total:    float64(s.OpenConnections),
		}
	})
}

func startConnMetrics(ctx context.Context, backend Backend, interval time.Duration, read func() connStats) func() {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	report := func() {
		s := read()
		metrics.DBConnections.WithLabelValues(string(backend), "acquired").Set(s.acquired)
		metrics.DBConnections.WithLabelValues(string(backend), "idle").Set(s.idle)
		metrics.DBConnections.WithLabelValues(string(backend), "max").Set(s.max)
		metrics.DBConnections.WithLabelValues(string(backend), "total").Set(s.total)
	}
	report()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				report()
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
