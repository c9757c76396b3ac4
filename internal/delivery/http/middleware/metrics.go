package middleware

import (
	"net/http"
	"time"
)

// RequestObserver receives one observation per served request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, seconds float64)
}

// Metrics reports the latency of each request to observer, labelled by the
// matched route pattern.
func Metrics(observer RequestObserver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		observer.ObserveRequest(r.Method, route(r), wrapped.status, time.Since(start).Seconds())
	})
}
