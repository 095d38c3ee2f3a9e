package httpkit

import (
	"compress/flate"
	"net/http"
	"net/netip"
	"time"

	"admissions/internal/platform/metrics"
	phttp "admissions/internal/platform/net/http"
	"admissions/internal/platform/net/middleware"
)

// StackOptions tunes CommonStackWith
type StackOptions struct {
	// CORSOrigins lists allowed browser origins, empty allows none
	CORSOrigins []string
	// Metrics records per route counters, nil disables them
	Metrics metrics.Recorder
	// TrustedProxies may report the client address in forwarding headers
	TrustedProxies []netip.Prefix
}

// CommonStackWith returns the middleware every API route runs through
func CommonStackWith(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(o.TrustedProxies),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		metrics.Middleware(o.Metrics),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins:   o.CORSOrigins,
			AllowCredentials: len(o.CORSOrigins) > 0,
		}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// RateLimit wires the per client rate limiter to the platform JSON writer
func RateLimit(o middleware.RateLimitOptions) func(http.Handler) http.Handler {
	return middleware.RateLimit(o, phttp.JSON)
}

// SubmitLimit rate limits public form posts per client ip under scope
// a nil limiter disables it
func SubmitLimit(l middleware.Limiter, rec metrics.Recorder, scope string) func(http.Handler) http.Handler {
	return RateLimit(middleware.RateLimitOptions{
		Limiter: l,
		Scope:   scope,
		OnLimit: metrics.OrNoop(rec).IncRateLimited,
	})
}
