package httpkit

import (
	"net/http"
	"net/url"
	"strings"

	"admissions/internal/core/authz"
	perrs "admissions/internal/platform/errors"
	"admissions/internal/platform/logger"
	pnet "admissions/internal/platform/net"
	phttp "admissions/internal/platform/net/http"
	"admissions/internal/platform/net/middleware"
)

// DefaultLoginPath is where browsers are sent when the admin gate turns them away
const DefaultLoginPath = "/admin/login"

// AdminGateOptions configures AdminGate
type AdminGateOptions struct {
	// Port resolves the session behind a request, nil rejects everyone
	Port middleware.AuthPort
	// LoginPath is the browser sign in page, defaults to DefaultLoginPath
	LoginPath string
	// Exempt lists full request paths that pass through untouched
	Exempt []string
}

// AdminGate admits only admin sessions to the wrapped routes
// browser navigations are redirected to the login page, API clients get an envelope
func AdminGate(o AdminGateOptions) func(http.Handler) http.Handler {
	login := o.LoginPath
	if login == "" {
		login = DefaultLoginPath
	}
	exempt := make(map[string]struct{}, len(o.Exempt))
	for _, p := range o.Exempt {
		exempt[strings.TrimSuffix(p, "/")] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exempt[strings.TrimSuffix(r.URL.Path, "/")]; ok {
				next.ServeHTTP(w, r)
				return
			}

			actor, who, err := admit(o.Port, r)
			if err != nil {
				deny(w, r, login, err)
				return
			}

			ctx := pnet.WithPrincipal(r.Context(), who)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), actor.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func admit(p middleware.AuthPort, r *http.Request) (authz.Actor, pnet.Principal, error) {
	if p == nil {
		return authz.Actor{}, pnet.Principal{}, authz.ErrUnauthenticated
	}
	who, err := p.Parse(r)
	if err != nil {
		return authz.Actor{}, pnet.Principal{}, err
	}
	actor, err := authz.RequireAdmin(&who)
	if err != nil {
		return authz.Actor{}, pnet.Principal{}, err
	}
	return actor, who, nil
}

func deny(w http.ResponseWriter, r *http.Request, login string, err error) {
	if wantsHTML(r) {
		switch {
		case authz.IsForbidden(err):
			http.Redirect(w, r, login+"?error=AccessDenied", http.StatusSeeOther)
			return
		case authz.IsUnauthenticated(err):
			http.Redirect(w, r, login+"?callbackUrl="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
	}
	if !perrs.IsCode(err, perrs.ErrorCodeUnavailable) {
		logger.C(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("admin gate denied")
	}
	phttp.RespondError(w, r, err)
}

// wantsHTML reports whether the request is a browser page navigation
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
