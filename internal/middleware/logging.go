package middleware

import (
	"net/http"
	"time"

	"github.com/evyataryagoni/countryselect/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// LoggingMiddleware logs each completed request with structured fields
// 5xx responses log at error level, 4xx at warn, the rest at info
func LoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// Request ID is set by chi's RequestID middleware
			reqLog := log.WithRequestID(middleware.GetReqID(r.Context()))

			next.ServeHTTP(ww, r)

			event := reqLog.Info()
			switch {
			case ww.Status() >= 500:
				event = reqLog.Error()
			case ww.Status() >= 400:
				event = reqLog.Warn()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.UserAgent()).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration_ms", time.Since(start)).
				Msg("Request completed")
		})
	}
}
