package http

import (
	"net/http"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

// BuildBaseHandler wraps handler in the middlewares every request passes
// through, outermost first: security headers, CORS, panic recovery, trace
// id, body size limit. Request metrics live on the router so they can be
// labelled by route template.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(CORSMiddleware(recovery(TraceIDMiddleware(maxRequestSize(handler)))))
}
