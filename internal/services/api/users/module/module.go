// Package module wires user administration into the API using modkit
package module

import (
	modkit "admissions/internal/modkit"
	"admissions/internal/modkit/httpkit"
	usershttp "admissions/internal/services/api/users/http"
	usersrepo "admissions/internal/services/api/users/repo"
	userssvc "admissions/internal/services/api/users/service"
)

// Module has no public routes of its own
type Module struct {
	modkit.Base
	svc userssvc.Service
}

// New constructs the users module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{
		Base: modkit.NewBase("users", "/users", nil, opts...),
		svc:  userssvc.New(deps.PG, usersrepo.NewPG()),
	}
}

// MountAdminRoutes mounts listing and role changes under /admin/users
func (m *Module) MountAdminRoutes(r httpkit.Router) {
	m.Admin(r, func(rr httpkit.Router) { usershttp.RegisterAdmin(rr, m.svc) })
}
