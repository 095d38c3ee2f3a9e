// Package module wires admin sessions into the API using modkit
package module

import (
	"net/http"

	modkit "admissions/internal/modkit"
	"admissions/internal/modkit/httpkit"
	authhttp "admissions/internal/services/api/auth/http"
	authrepo "admissions/internal/services/api/auth/repo"
	authsvc "admissions/internal/services/api/auth/service"
)

// Module serves the public /auth routes, login, logout and session sit at the admin root
type Module struct {
	modkit.Base
	limit func(http.Handler) http.Handler
	svc   authsvc.Service
}

// New constructs the auth module, deps.Tokens is required
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	svc := authsvc.New(deps.PG, authrepo.NewPG(), deps.Tokens, deps.Revoked, o.Seed, deps.Metrics)
	return &Module{
		Base:  modkit.NewBase("auth", "/auth", func(r httpkit.Router) { authhttp.Register(r, svc) }, opts...),
		limit: httpkit.SubmitLimit(deps.Limiter, deps.Metrics, "login"),
		svc:   svc,
	}
}

// MountAdminRoutes mounts the session routes without a prefix
func (m *Module) MountAdminRoutes(r httpkit.Router) {
	authhttp.RegisterAdmin(r, m.svc, m.limit)
}
