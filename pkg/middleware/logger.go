package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Logger returns middleware that logs one line per request. Server
// errors log at error level, client errors at warn.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := NewRecorder(w)
			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			switch {
			case rec.Status >= 500:
				level = slog.LevelError
			case rec.Status >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(
				r.Context(),
				level,
				"request",
				slog.String("method", r.Method),
				slog.String("uri", r.URL.RequestURI()),
				slog.Int("status", rec.Status),
				slog.Int("bytes", rec.Bytes),
				slog.String("addr", r.RemoteAddr),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
