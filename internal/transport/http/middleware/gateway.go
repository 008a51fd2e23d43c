package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Gateway returns middleware that authenticates the messaging-bot gateway
// via a shared bearer token. An empty configured token rejects everything —
// the surface is never open by accident.
func Gateway(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			presented := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "invalid gateway token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
