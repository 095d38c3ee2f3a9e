// Package module wires growth charts and the dashboard into the API
package module

import (
	modkit "admissions/internal/modkit"
	"admissions/internal/modkit/httpkit"
	statshttp "admissions/internal/services/api/stats/http"
	statsrepo "admissions/internal/services/api/stats/repo"
	statssvc "admissions/internal/services/api/stats/service"
)

// Module serves the public charts and the admin dashboard
type Module struct {
	modkit.Base
	svc statssvc.Service
}

// New constructs the stats module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := statssvc.New(deps.PG, statsrepo.NewPG())
	return &Module{
		Base: modkit.NewBase("stats", "/stats", func(r httpkit.Router) { statshttp.Register(r, svc) }, opts...),
		svc:  svc,
	}
}

func (m *Module) MountAdminRoutes(r httpkit.Router) {
	m.Admin(r, func(rr httpkit.Router) { statshttp.RegisterAdmin(rr, m.svc) })
}
