package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Submit(ctx context.Context, in SubmitInput) (Submitted, error)
	List(ctx context.Context, q ListQuery) (List, error)
	Update(ctx context.Context, id string, in UpdateInput) (Registration, error)
	Delete(ctx context.Context, id string) error
	Link(ctx context.Context, id string, in LinkInput) (Registration, error)
}
