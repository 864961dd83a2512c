package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
)

// Envelope is the shape of every response body.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Message: message})
}

func WriteData(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Message: message, Data: data})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteMessage(w, status, message)
}

// DecodeJSON reads a single JSON document from the request body. Malformed
// input maps to ErrInvalidPayload and bodies over the size limit to
// ErrPayloadTooLarge.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return commonerrors.ErrPayloadTooLarge.WithCause(err)
		}
		return commonerrors.ErrInvalidPayload.WithCause(err)
	}
	return nil
}

func GetClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Real-IP")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
		if idx := strings.Index(ip, ","); idx != -1 {
			ip = strings.TrimSpace(ip[:idx])
		}
	}
	if ip == "" {
		ip = r.RemoteAddr
		if idx := strings.LastIndex(ip, ":"); idx != -1 {
			ip = ip[:idx]
		}
	}
	return ip
}

func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
