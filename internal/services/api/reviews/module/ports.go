package module

import (
	"context"

	"admissions/internal/services/api/reviews/domain"
	revsvc "admissions/internal/services/api/reviews/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return adaptReviewsPort{svc: m.svc} }

type adaptReviewsPort struct{ svc revsvc.Service }

// Submit stores a review awaiting moderation
func (a adaptReviewsPort) Submit(ctx context.Context, in domain.SubmitInput) (domain.Submitted, error) {
	return a.svc.Submit(ctx, in)
}

// ListPublic returns approved reviews
func (a adaptReviewsPort) ListPublic(ctx context.Context, q domain.PublicQuery) (domain.PublicList, error) {
	return a.svc.ListPublic(ctx, q)
}

// List returns reviews for moderators
func (a adaptReviewsPort) List(ctx context.Context, q domain.ListQuery) (domain.List, error) {
	return a.svc.List(ctx, q)
}

// Approve publishes a review
func (a adaptReviewsPort) Approve(ctx context.Context, id string) (domain.Review, error) {
	return a.svc.Approve(ctx, id)
}

// Reject hides a review
func (a adaptReviewsPort) Reject(ctx context.Context, id string, in domain.RejectInput) (domain.Review, error) {
	return a.svc.Reject(ctx, id, in)
}

// Delete removes a review
func (a adaptReviewsPort) Delete(ctx context.Context, id string) error {
	return a.svc.Delete(ctx, id)
}
