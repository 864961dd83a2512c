package constants

import "time"

const (
	ResponderUsernameMinLength = 4
	ResponderSecretMinLength   = 8
	SecretMaxLength            = 72

	DefaultBcryptCost     = 10
	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	SQLiteBusyTimeout     = 5 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerMaxHeaderBytes    = 16 << 10

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "5000"
	DefaultRequestTimeout = 5 * time.Second

	DefaultAuthRateLimit    = 1.0
	DefaultAuthRateBurst    = 5
	DefaultGeneralRateLimit = 20.0
	DefaultGeneralRateBurst = 40

	RateLimitCleanupInterval = 5 * time.Minute

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
