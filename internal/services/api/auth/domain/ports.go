package domain

import "context"

// ServicePort is consumed by handlers, the seed binary and other modules
type ServicePort interface {
	Login(ctx context.Context, in LoginInput) (Session, error)
	Logout(ctx context.Context) (LoggedOut, error)
	Current(ctx context.Context) (Current, error)
	Seed(ctx context.Context) (Seeded, error)
}
