// Package service contains user administration workflows
package service

import (
	"context"
	"errors"

	"admissions/internal/core/authz"
	"admissions/internal/core/normalize"
	"admissions/internal/modkit/repokit"
	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/logger"
	"admissions/internal/platform/net/http/bind"
	"admissions/internal/services/api/users/domain"
	"admissions/internal/services/api/users/repo"

	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ErrNotFound is returned for a missing or malformed user id
var ErrNotFound = perr.New(perr.ErrorCodeNotFound, "user not found")

// Service defines the users service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the users service
type Svc struct {
	Repo repo.Repo
}

// New constructs a users service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("users.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("users.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db)}
}

// List returns one page of users, most recently joined first
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.List, error) {
	if _, err := authz.RequireAdminCtx(ctx); err != nil {
		return domain.List{}, err
	}

	page := repokit.NewPage(q.Page, q.Limit, defaultLimit, maxLimit)
	rows, total, err := s.Repo.List(ctx, repo.Filter{
		Role:          q.Role,
		ProfileStatus: q.ProfileStatus,
		Search:        normalize.Text(q.Search),
	}, page)
	if err != nil {
		return domain.List{}, perr.FromPostgres(err, "failed to list users")
	}

	items := make([]domain.User, 0, len(rows))
	for _, r := range rows {
		items = append(items, toDTO(r))
	}
	return domain.List{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// Update changes role, profile status or profile fields of a user
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.User, error) {
	actor, err := authz.RequireAdminCtx(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, ErrNotFound
	}

	in = normalizeUpdate(in)
	if err := bind.Validate(in); err != nil {
		return domain.User{}, err
	}

	row, err := s.Repo.Update(ctx, id, repo.Patch{
		Role:          in.Role,
		ProfileStatus: in.ProfileStatus,
		Name:          in.Name,
		Phone:         in.Phone,
		College:       in.College,
		City:          in.City,
		Bio:           in.Bio,
	})
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, perr.FromPostgres(err, "failed to update user")
	}

	ev := logger.C(ctx).Info().Str("user_id", id).Str("actor_id", actor.ID)
	if in.Role != nil {
		ev = ev.Str("role", *in.Role)
	}
	if in.ProfileStatus != nil {
		ev = ev.Str("profile_status", *in.ProfileStatus)
	}
	ev.Msg("user updated")
	return toDTO(row), nil
}

func normalizeUpdate(in domain.UpdateInput) domain.UpdateInput {
	if in.Name != nil {
		v := normalize.Text(*in.Name)
		in.Name = &v
	}
	if in.Phone != nil {
		v := normalize.Phone(*in.Phone)
		in.Phone = &v
	}
	if in.College != nil {
		v := normalize.Text(*in.College)
		in.College = &v
	}
	if in.City != nil {
		v := normalize.Text(*in.City)
		in.City = &v
	}
	if in.Bio != nil {
		v := normalize.Multiline(*in.Bio)
		in.Bio = &v
	}
	return in
}

func toDTO(r repo.Row) domain.User {
	return domain.User{
		ID:            r.ID,
		Email:         r.Email,
		EmailVerified: r.EmailVerified,
		Name:          r.Name,
		Phone:         r.Phone,
		College:       r.College,
		City:          r.City,
		Avatar:        r.Avatar,
		Bio:           r.Bio,
		Role:          r.Role,
		ProfileStatus: r.ProfileStatus,
		JoinedAt:      r.JoinedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
