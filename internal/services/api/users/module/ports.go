package module

import (
	"context"

	"admissions/internal/services/api/users/domain"
	userssvc "admissions/internal/services/api/users/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return adaptUsersPort{svc: m.svc} }

type adaptUsersPort struct{ svc userssvc.Service }

// List returns one page of users
func (a adaptUsersPort) List(ctx context.Context, q domain.ListQuery) (domain.List, error) {
	return a.svc.List(ctx, q)
}

// Update patches a user
func (a adaptUsersPort) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.User, error) {
	return a.svc.Update(ctx, id, in)
}
