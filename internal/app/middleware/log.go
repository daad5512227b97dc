package middleware

import (
	"net/http"
	"time"

	"fulfillment/internal/app/logger"
)

// Log requests on the ops endpoint
func Log(l logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := l.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
			l.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}
