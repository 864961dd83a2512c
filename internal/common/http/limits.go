package http

import (
	"net/http"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
)

// MaxRequestSizeMiddleware rejects bodies over maxBytes. A declared
// Content-Length is checked up front; chunked bodies are cut off by
// http.MaxBytesReader and surface as ErrPayloadTooLarge from DecodeJSON.
func MaxRequestSizeMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				WriteError(w, http.StatusRequestEntityTooLarge, commonerrors.ErrPayloadTooLarge.Message())
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
