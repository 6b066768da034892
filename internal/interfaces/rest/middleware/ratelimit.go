package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

const rateLimitedBody = `{"success":false,"error":"Too many requests, please try again later","code":"RATE_LIMITED"}`

// RateLimitByIP allows at most requests per window from one client IP.
func RateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(rateLimitedBody))
		}),
	)
}
