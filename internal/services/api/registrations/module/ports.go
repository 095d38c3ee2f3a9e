package module

import (
	"context"

	"admissions/internal/services/api/registrations/domain"
	regsvc "admissions/internal/services/api/registrations/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return adaptRegistrationsPort{svc: m.svc} }

type adaptRegistrationsPort struct{ svc regsvc.Service }

// Submit stores a public registration
func (a adaptRegistrationsPort) Submit(ctx context.Context, in domain.SubmitInput) (domain.Submitted, error) {
	return a.svc.Submit(ctx, in)
}

// List returns one page of registrations
func (a adaptRegistrationsPort) List(ctx context.Context, q domain.ListQuery) (domain.List, error) {
	return a.svc.List(ctx, q)
}

// Update patches a registration
func (a adaptRegistrationsPort) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Registration, error) {
	return a.svc.Update(ctx, id, in)
}

// Delete removes a registration
func (a adaptRegistrationsPort) Delete(ctx context.Context, id string) error {
	return a.svc.Delete(ctx, id)
}

// Link attaches a registration to a user
func (a adaptRegistrationsPort) Link(ctx context.Context, id string, in domain.LinkInput) (domain.Registration, error) {
	return a.svc.Link(ctx, id, in)
}
