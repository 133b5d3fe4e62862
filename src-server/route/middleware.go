package route

import (
	"log/slog"
	"net/http"
	"time"
)

// LogMiddleware logs each request with its latency. The calendar surface
// carries no auth layer; session identity is fixed at construction.
func LogMiddleware(next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		startTimer := time.Now()
		next(w, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"latency_microsec", time.Since(startTimer).Microseconds(),
		)
	}
}
