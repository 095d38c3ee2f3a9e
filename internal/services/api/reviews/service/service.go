// Package service contains review workflows
package service

import (
	"context"
	"errors"
	"time"

	"admissions/internal/core/authz"
	"admissions/internal/core/normalize"
	"admissions/internal/modkit/repokit"
	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/logger"
	"admissions/internal/platform/metrics"
	"admissions/internal/platform/net/http/bind"
	"admissions/internal/services/api/reviews/domain"
	"admissions/internal/services/api/reviews/repo"

	"github.com/google/uuid"
)

const (
	publicLimit  = 10
	publicMax    = 50
	defaultLimit = 20
	maxLimit     = 100
)

// ErrNotFound is returned for a missing or malformed review id
var ErrNotFound = perr.New(perr.ErrorCodeNotFound, "review not found")

// Service defines the reviews service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the reviews service
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	metrics metrics.Recorder

	// Now stamps moderation decisions
	Now func() time.Time
}

// New constructs a reviews service, rec may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], rec metrics.Recorder) *Svc {
	if db == nil {
		panic("reviews.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reviews.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, metrics: metrics.OrNoop(rec), Now: time.Now}
}

// Submit stores a review awaiting moderation
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.Submitted, error) {
	in.Name = normalize.Text(in.Name)
	in.Email = normalize.Email(in.Email)
	in.College = normalize.Text(in.College)
	in.Review = normalize.Multiline(in.Review)
	if err := bind.Validate(in); err != nil {
		return domain.Submitted{}, err
	}

	id, err := s.Repo.Create(ctx, repo.NewRow{
		Name:    in.Name,
		Email:   in.Email,
		College: in.College,
		Rating:  in.Rating,
		Review:  in.Review,
		UserID:  in.UserID,
	})
	if err != nil {
		if perr.IsForeignKeyViolation(err) {
			return domain.Submitted{}, perr.WithField(perr.Validationf("user_id does not exist"), "user_id")
		}
		return domain.Submitted{}, perr.FromPostgres(err, "failed to submit review")
	}
	s.metrics.IncSubmission("review")
	logger.C(ctx).Info().Str("review_id", id).Int("rating", in.Rating).Msg("review received")
	return domain.Submitted{ID: id, Message: domain.SubmittedMessage}, nil
}

// ListPublic returns approved reviews, newest first
func (s *Svc) ListPublic(ctx context.Context, q domain.PublicQuery) (domain.PublicList, error) {
	page := repokit.NewPage(q.Page, q.Limit, publicLimit, publicMax)
	approved := true
	rows, total, err := s.Repo.List(ctx, repo.Filter{
		Approved: &approved,
		Rating:   q.Rating,
		College:  normalize.Text(q.College),
	}, page)
	if err != nil {
		return domain.PublicList{}, perr.FromPostgres(err, "failed to fetch reviews")
	}

	items := make([]domain.PublicReview, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.PublicReview{
			ID:        r.ID,
			Name:      r.Name,
			College:   r.College,
			Rating:    r.Rating,
			Review:    r.Review,
			CreatedAt: r.CreatedAt,
		})
	}
	return domain.PublicList{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// List returns reviews for moderators
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.List, error) {
	if _, err := authz.RequireAdminCtx(ctx); err != nil {
		return domain.List{}, err
	}

	page := repokit.NewPage(q.Page, q.Limit, defaultLimit, maxLimit)
	rows, total, err := s.Repo.List(ctx, repo.Filter{
		Approved: q.Approved,
		Rating:   q.Rating,
		Search:   normalize.Text(q.Search),
	}, page)
	if err != nil {
		return domain.List{}, perr.FromPostgres(err, "failed to list reviews")
	}

	items := make([]domain.Review, 0, len(rows))
	for _, r := range rows {
		items = append(items, toDTO(r))
	}
	return domain.List{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// Approve publishes a review and clears any earlier rejection
func (s *Svc) Approve(ctx context.Context, id string) (domain.Review, error) {
	actor, err := authz.RequireAdminCtx(ctx)
	if err != nil {
		return domain.Review{}, err
	}
	return s.moderate(ctx, id, ApproveStamp(actor, s.Now()))
}

// Reject hides a review, a blank reason falls back to DefaultRejectReason
func (s *Svc) Reject(ctx context.Context, id string, in domain.RejectInput) (domain.Review, error) {
	actor, err := authz.RequireAdminCtx(ctx)
	if err != nil {
		return domain.Review{}, err
	}
	reason := ""
	if in.Reason != nil {
		reason = normalize.Multiline(*in.Reason)
	}
	return s.moderate(ctx, id, RejectStamp(actor, reason, s.Now()))
}

func (s *Svc) moderate(ctx context.Context, id string, st repo.Stamp) (domain.Review, error) {
	if !validID(id) {
		return domain.Review{}, ErrNotFound
	}
	row, err := s.Repo.Moderate(ctx, id, st)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, perr.FromPostgres(err, "failed to moderate review")
	}

	decision := domain.StateApproved
	if !st.Approved {
		decision = domain.StateRejected
	}
	s.metrics.IncModeration(decision)
	logger.C(ctx).Info().Str("review_id", id).Str("actor_id", st.By).Str("decision", decision).Msg("review moderated")
	return toDTO(row), nil
}

// Delete removes a review
func (s *Svc) Delete(ctx context.Context, id string) error {
	actor, err := authz.RequireAdminCtx(ctx)
	if err != nil {
		return err
	}
	if !validID(id) {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return ErrNotFound
		}
		return perr.FromPostgres(err, "failed to delete review")
	}
	logger.C(ctx).Info().Str("review_id", id).Str("actor_id", actor.ID).Msg("review deleted")
	return nil
}

// ApproveStamp is an approval by actor at now, the rejection reason is always cleared
func ApproveStamp(actor authz.Actor, now time.Time) repo.Stamp {
	return repo.Stamp{Approved: true, Reason: nil, By: actor.ID, At: now}
}

// RejectStamp is a rejection by actor at now, an empty reason becomes DefaultRejectReason
func RejectStamp(actor authz.Actor, reason string, now time.Time) repo.Stamp {
	if reason == "" {
		reason = domain.DefaultRejectReason
	}
	return repo.Stamp{Approved: false, Reason: &reason, By: actor.ID, At: now}
}

// State derives the moderation state from the stamp columns
func State(approved bool, reason *string) string {
	switch {
	case approved:
		return domain.StateApproved
	case reason != nil:
		return domain.StateRejected
	default:
		return domain.StatePending
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toDTO(r repo.Row) domain.Review {
	return domain.Review{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		College:         r.College,
		Rating:          r.Rating,
		Review:          r.Review,
		Approved:        r.Approved,
		State:           State(r.Approved, r.RejectionReason),
		ModeratedBy:     r.ModeratedBy,
		ModeratedAt:     r.ModeratedAt,
		RejectionReason: r.RejectionReason,
		UserID:          r.UserID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
