package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// GzipRequestMiddleware transparently decompresses gzip-encoded request
// bodies. Response compression is handled by the router's Compress stage.
func GzipRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
			defer gz.Close()
			r.Body = io.NopCloser(gz)
		}
		next.ServeHTTP(w, r)
	})
}
