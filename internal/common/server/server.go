package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// connections, runs hooks in order and shuts the server down.
func Run(ctx context.Context, server *http.Server, log *logger.Logger, hooks ...ShutdownHook) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("forum api listening on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("shutting down forum api...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	server.SetKeepAlivesEnabled(false)

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forum api forced to shutdown: %v", err)
	} else {
		log.Infof("forum api stopped accepting connections")
	}

	drainCtx, drainCancel := context.WithTimeout(shutdownCtx, constants.DrainTimeout)
	defer drainCancel()

	for i, hook := range hooks {
		if err := hook(drainCtx); err != nil {
			log.Errorf("shutdown hook %d failed: %v", i, err)
		}
	}

	log.Infof("forum api stopped gracefully")
	return nil
}
