package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	List(ctx context.Context, q ListQuery) (List, error)
	Update(ctx context.Context, id string, in UpdateInput) (User, error)
}
