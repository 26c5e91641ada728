package mw

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/metrics"
)

// Metrics records request count and latency per route pattern.
// Unmatched requests share the "unmatched" route label to keep cardinality bounded.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(ww, r)

			metrics.ObserveRequest(r.Method, routePattern(r), ww.code(), time.Since(start))
		})
	}
}
