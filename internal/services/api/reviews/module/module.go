// Package module wires reviews into the API using modkit
package module

import (
	modkit "admissions/internal/modkit"
	"admissions/internal/modkit/httpkit"
	revhttp "admissions/internal/services/api/reviews/http"
	revrepo "admissions/internal/services/api/reviews/repo"
	revsvc "admissions/internal/services/api/reviews/service"
)

// Module serves public review submission and listing, moderation sits behind the admin gate
type Module struct {
	modkit.Base
	svc revsvc.Service
}

// New constructs the reviews module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := revsvc.New(deps.PG, revrepo.NewPG(), deps.Metrics)
	limit := httpkit.SubmitLimit(deps.Limiter, deps.Metrics, "reviews")
	return &Module{
		Base: modkit.NewBase("reviews", "/reviews", func(r httpkit.Router) { revhttp.Register(r, svc, limit) }, opts...),
		svc:  svc,
	}
}

// MountAdminRoutes mounts moderation under /admin/reviews
func (m *Module) MountAdminRoutes(r httpkit.Router) {
	m.Admin(r, func(rr httpkit.Router) { revhttp.RegisterAdmin(rr, m.svc) })
}
