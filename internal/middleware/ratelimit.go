package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// RateLimit rejects requests with 429 once limiter runs out of tokens. A nil
// limiter disables limiting.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				rateLimitRejects.Inc()
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"message": "Rate limit exceeded, retry shortly.",
				})
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(limiter.Limit())))
			next.ServeHTTP(w, r)
		})
	}
}

// NewLimiter builds a global token bucket. It returns nil when perSecond is 0.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
