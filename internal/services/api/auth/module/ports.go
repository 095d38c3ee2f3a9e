package module

import (
	"context"

	"admissions/internal/services/api/auth/domain"
	authsvc "admissions/internal/services/api/auth/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return adaptAuthPort{svc: m.svc} }

type adaptAuthPort struct{ svc authsvc.Service }

// Login issues an admin session
func (a adaptAuthPort) Login(ctx context.Context, in domain.LoginInput) (domain.Session, error) {
	return a.svc.Login(ctx, in)
}

// Logout revokes the current session
func (a adaptAuthPort) Logout(ctx context.Context) (domain.LoggedOut, error) {
	return a.svc.Logout(ctx)
}

// Current returns the current session
func (a adaptAuthPort) Current(ctx context.Context) (domain.Current, error) {
	return a.svc.Current(ctx)
}

// Seed creates the configured admin
func (a adaptAuthPort) Seed(ctx context.Context) (domain.Seeded, error) {
	return a.svc.Seed(ctx)
}
