package middleware

import (
	"crypto/subtle"
	"net/http"
)

const AdminKeyHeader = "X-Admin-Key"

const unauthorizedBody = `{"success":false,"error":"Admin key required","code":"UNAUTHORIZED"}`

// RequireAdminKey rejects requests whose X-Admin-Key does not match key.
// An empty key leaves the route open.
func RequireAdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(unauthorizedBody))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
