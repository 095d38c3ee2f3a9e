// Package service contains registration workflows
package service

import (
	"context"
	"errors"

	"admissions/internal/core/authz"
	"admissions/internal/core/normalize"
	"admissions/internal/modkit/repokit"
	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/logger"
	"admissions/internal/platform/metrics"
	"admissions/internal/platform/net/http/bind"
	"admissions/internal/services/api/registrations/domain"
	"admissions/internal/services/api/registrations/repo"

	"github.com/google/uuid"
)

// admin list paging
const (
	defaultLimit = 20
	maxLimit     = 100
)

// ErrNotFound is returned for a missing or malformed registration id
var ErrNotFound = perr.New(perr.ErrorCodeNotFound, "registration not found")

// ErrUserNotFound is returned when linking to a user that does not exist
var ErrUserNotFound = perr.New(perr.ErrorCodeNotFound, "user not found")

// Service defines the registrations service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the registrations service
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	metrics metrics.Recorder
}

// New constructs a registrations service, rec may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], rec metrics.Recorder) *Svc {
	if db == nil {
		panic("registrations.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("registrations.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, metrics: metrics.OrNoop(rec)}
}

// Submit stores a public intake form
// input is normalized first and validated again so collapsed values still meet the length rules
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.Submitted, error) {
	in = normalizeSubmit(in)
	if err := bind.Validate(in); err != nil {
		return domain.Submitted{}, err
	}

	id, err := s.Repo.Create(ctx, repo.NewRow{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		College:          in.College,
		CurrentCity:      in.CurrentCity,
		PermanentAddress: in.PermanentAddress,
		Message:          in.Message,
	})
	if err != nil {
		return domain.Submitted{}, perr.FromPostgres(err, "failed to submit registration")
	}
	s.metrics.IncSubmission("registration")
	logger.C(ctx).Info().Str("registration_id", id).Msg("registration received")
	return domain.Submitted{ID: id}, nil
}

func normalizeSubmit(in domain.SubmitInput) domain.SubmitInput {
	in.Name = normalize.Text(in.Name)
	in.Email = normalize.Email(in.Email)
	in.Phone = normalize.Phone(in.Phone)
	in.College = normalize.Text(in.College)
	in.CurrentCity = normalize.Text(in.CurrentCity)
	in.PermanentAddress = normalize.Multiline(in.PermanentAddress)
	in.Message = normalize.Optional(in.Message)
	return in
}

// List returns one page of registrations, newest first
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.List, error) {
	if _, err := authz.RequireAdminCtx(ctx); err != nil {
		return domain.List{}, err
	}

	page := repokit.NewPage(q.Page, q.Limit, defaultLimit, maxLimit)
	rows, total, err := s.Repo.List(ctx, repo.Filter{
		Contacted: q.Contacted,
		Status:    string(q.Status),
		Search:    normalize.Text(q.Search),
	}, page)
	if err != nil {
		return domain.List{}, perr.FromPostgres(err, "failed to list registrations")
	}

	items := make([]domain.Registration, 0, len(rows))
	for _, r := range rows {
		items = append(items, toDTO(r))
	}
	return domain.List{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// Update patches contacted, internal note and status
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Registration, error) {
	actor, err := authz.RequireAdminCtx(ctx)
	if err != nil {
		return domain.Registration{}, err
	}
	if !validID(id) {
		return domain.Registration{}, ErrNotFound
	}

	p := repo.Patch{Contacted: in.Contacted}
	if in.InternalNote != nil {
		note := normalize.Multiline(*in.InternalNote)
		p.InternalNote = &note
	}
	if in.Status != nil {
		st := string(*in.Status)
		p.Status = &st
	}

	row, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return domain.Registration{}, notFoundOr(err, ErrNotFound, "failed to update registration")
	}
	logger.C(ctx).Info().Str("registration_id", id).Str("actor_id", actor.ID).Msg("registration updated")
	return toDTO(row), nil
}

// Delete removes a registration
func (s *Svc) Delete(ctx context.Context, id string) error {
	actor, err := authz.RequireAdminCtx(ctx)
	if err != nil {
		return err
	}
	if !validID(id) {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, ErrNotFound, "failed to delete registration")
	}
	logger.C(ctx).Info().Str("registration_id", id).Str("actor_id", actor.ID).Msg("registration deleted")
	return nil
}

// Link attaches a registration to an existing user
func (s *Svc) Link(ctx context.Context, id string, in domain.LinkInput) (domain.Registration, error) {
	if _, err := authz.RequireAdminCtx(ctx); err != nil {
		return domain.Registration{}, err
	}
	if !validID(in.UserID) {
		return domain.Registration{}, ErrUserNotFound
	}
	if !validID(id) {
		return domain.Registration{}, ErrNotFound
	}

	var out repo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		ok, err := r.UserExists(ctx, in.UserID)
		if err != nil {
			return perr.FromPostgres(err, "failed to look up user")
		}
		if !ok {
			return ErrUserNotFound
		}
		out, err = r.LinkUser(ctx, id, in.UserID)
		if err != nil {
			return notFoundOr(err, ErrNotFound, "failed to link registration")
		}
		return nil
	})
	if err != nil {
		if _, ok := perr.As(err); !ok {
			err = perr.FromPostgres(err, "failed to link registration")
		}
		return domain.Registration{}, err
	}
	return toDTO(out), nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// notFoundOr maps a missing row to nf and anything else to a persistence failure
func notFoundOr(err, nf error, msg string) error {
	if errors.Is(err, perr.ErrNotFound) {
		return nf
	}
	return perr.FromPostgres(err, msg)
}

func toDTO(r repo.Row) domain.Registration {
	return domain.Registration{
		ID:               r.ID,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		College:          r.College,
		CurrentCity:      r.CurrentCity,
		PermanentAddress: r.PermanentAddress,
		Message:          r.Message,
		Contacted:        r.Contacted,
		InternalNote:     r.InternalNote,
		Status:           domain.Status(r.Status),
		UserID:           r.UserID,
		CreatedAt:        r.CreatedAt,
	}
}
