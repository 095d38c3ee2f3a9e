// Package module wires counselling registrations into the API using modkit
package module

import (
	modkit "admissions/internal/modkit"
	"admissions/internal/modkit/httpkit"
	reghttp "admissions/internal/services/api/registrations/http"
	regrepo "admissions/internal/services/api/registrations/repo"
	regsvc "admissions/internal/services/api/registrations/service"
)

// Module takes public registrations and serves the back office list
type Module struct {
	modkit.Base
	svc regsvc.Service
}

// New constructs the registrations module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := regsvc.New(deps.PG, regrepo.NewPG(), deps.Metrics)
	limit := httpkit.SubmitLimit(deps.Limiter, deps.Metrics, "registrations")
	return &Module{
		Base: modkit.NewBase("registrations", "/registrations", func(r httpkit.Router) { reghttp.Register(r, svc, limit) }, opts...),
		svc:  svc,
	}
}

// MountAdminRoutes mounts the back office routes under the same prefix
func (m *Module) MountAdminRoutes(r httpkit.Router) {
	m.Admin(r, func(rr httpkit.Router) { reghttp.RegisterAdmin(rr, m.svc) })
}
