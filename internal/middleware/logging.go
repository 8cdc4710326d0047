package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Logger writes one debug entry per completed request.
func Logger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			log.Debug("request completed",
				zap.String("request_id", RequestIDFromContext(r.Context())),
				zap.String("method", r.Method),
				zap.String("route", routePattern(r)),
				zap.Int("status", rw.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
