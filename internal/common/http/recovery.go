package http

import (
	"errors"
	"net/http"
	"runtime/debug"

	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

// RecoveryMiddleware turns a handler panic into a redacted 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can abort the response.
func RecoveryMiddleware(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				metrics.PanicsRecoveredTotal.Inc()
				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"method": r.Method,
					"action": "panic_recovered",
				}).Errorf("panic recovered: %v\n%s", rec, debug.Stack())
				WriteError(w, http.StatusInternalServerError, commonerrors.ErrInternalError.Message())
			}()
			next.ServeHTTP(w, r)
		})
	}
}
