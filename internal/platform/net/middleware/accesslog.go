// Package middleware holds adapters over chi middleware and the in house ones
package middleware

import (
	"net/http"
	"time"

	"admissions/internal/platform/logger"
	pnet "admissions/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests at warn once they take this long, 0 disables it
	Slow time.Duration
	// Logger replaces the root logger, tests capture lines with it
	Logger *logger.Logger
}

// AccessLogZerolog writes one line per request after it completes
// it also seeds the request scoped logger with the request id so lines
// logged by handlers carry it too
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := pnet.RequestID(r.Context())
			r = r.WithContext(logger.WithRequest(r.Context(), reqID, ""))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log := logger.C(r.Context())
			if opt.Logger != nil {
				l := opt.Logger.With().Str("request_id", reqID).Logger()
				log = &l
			}
			level := zerolog.InfoLevel
			switch {
			case status >= http.StatusInternalServerError:
				level = zerolog.ErrorLevel
			case opt.Slow > 0 && elapsed >= opt.Slow:
				level = zerolog.WarnLevel
			}

			log.WithLevel(level).
				Int("status", status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", ww.BytesWritten()).
				Str("remote", r.RemoteAddr).
				Msg("request done")
		})
	}
}
