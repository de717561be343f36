package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"toolrent-backend/internal/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestLogging attaches a request ID to each request and logs method, path,
// and duration on completion.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Handled request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
