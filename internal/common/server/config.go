package server

import (
	"net/http"
	"time"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
}

// DefaultServerConfig listens on every interface at port. The write
// timeout must stay above the per-request deadline so handlers can still
// answer with a timeout error.
func DefaultServerConfig(port string) ServerConfig {
	return ServerConfig{
		Addr:              ":" + port,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
		MaxHeaderBytes:    constants.ServerMaxHeaderBytes,
	}
}

// NewServer builds the http.Server. Connection-level errors that net/http
// reports on its own go to log at WARNING.
func NewServer(cfg ServerConfig, handler http.Handler, log *logger.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		ErrorLog:          log.StdLogger(logger.WARNING),
	}
}
