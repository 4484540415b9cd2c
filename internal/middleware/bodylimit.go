package middleware

import "net/http"

// BodyLimitMiddleware caps the request body size before any handler reads
// it. Oversized bodies fail with http.MaxBytesError during the read.
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
