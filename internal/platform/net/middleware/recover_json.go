package middleware

import (
	"net/http"
	"runtime/debug"

	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/logger"
	pnet "admissions/internal/platform/net"
	phttp "admissions/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into the 500 envelope and logs the stack
// http.ErrAbortHandler is re-raised so net/http can drop the connection quietly
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			_, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			phttp.JSON(w, http.StatusInternalServerError, body)
		}()
		next.ServeHTTP(w, r)
	})
}
