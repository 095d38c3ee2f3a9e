package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Submit(ctx context.Context, in SubmitInput) (Submitted, error)
	ListPublic(ctx context.Context, q PublicQuery) (PublicList, error)

	List(ctx context.Context, q ListQuery) (List, error)
	Approve(ctx context.Context, id string) (Review, error)
	Reject(ctx context.Context, id string, in RejectInput) (Review, error)
	Delete(ctx context.Context, id string) error
}
