// Package service contains stats workflows
// every figure is recomputed from the live tables on each call
package service

import (
	"context"
	"time"

	"admissions/internal/core/authz"
	"admissions/internal/core/growth"
	"admissions/internal/modkit/repokit"
	perr "admissions/internal/platform/errors"
	"admissions/internal/services/api/stats/domain"
	"admissions/internal/services/api/stats/repo"
)

// review chart colors
const (
	fillApproved = "#ECA400"
	fillPending  = "#E07A5F"
	fillRejected = "#3D405B"
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Repo repo.Repo
	Now  func() time.Time
}

// New constructs a stats service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("stats.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("stats.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), Now: time.Now}
}

// Dashboard returns counters, the six month registration history and the review chart
func (s *Svc) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	if _, err := authz.RequireAdminCtx(ctx); err != nil {
		return domain.Dashboard{}, err
	}

	c, err := s.Repo.Counts(ctx)
	if err != nil {
		return domain.Dashboard{}, perr.FromPostgres(err, "failed to load dashboard stats")
	}
	history, err := s.series(ctx, growth.Dashboard)
	if err != nil {
		return domain.Dashboard{}, err
	}

	return domain.Dashboard{
		Counts: domain.Counts{
			Registrations: domain.RegistrationCounts{
				Total:     c.Registrations,
				Pending:   c.RegistrationsPending,
				Contacted: c.RegistrationsContacted,
			},
			Reviews: domain.ReviewCounts{
				Total:    c.Reviews,
				Pending:  c.ReviewsPending,
				Approved: c.ReviewsApproved,
				Rejected: c.ReviewsRejected,
			},
			Users: domain.UserCounts{Total: c.Users, Active: c.UsersActive},
		},
		RegistrationHistory: history,
		ReviewStats:         ReviewChart(c.ReviewsApproved, c.ReviewsPending, c.ReviewsRejected),
	}, nil
}

// ReviewChart returns the fixed three categories in display order
func ReviewChart(approved, pending, rejected int) []domain.ReviewSlice {
	return []domain.ReviewSlice{
		{Status: "Approved", Count: approved, Fill: fillApproved},
		{Status: "Pending", Count: pending, Fill: fillPending},
		{Status: "Rejected", Count: rejected, Fill: fillRejected},
	}
}

// Growth returns the public twelve month chart
func (s *Svc) Growth(ctx context.Context) (domain.Growth, error) {
	buckets, total, err := s.public(ctx, growth.PublicMonthly)
	if err != nil {
		return domain.Growth{}, err
	}
	return domain.Growth{Growth: buckets, TotalStudents: total}, nil
}

// DailyGrowth returns the public thirty day chart
func (s *Svc) DailyGrowth(ctx context.Context) (domain.DailyGrowth, error) {
	buckets, total, err := s.public(ctx, growth.PublicDaily)
	if err != nil {
		return domain.DailyGrowth{}, err
	}
	return domain.DailyGrowth{Growth: buckets, Total: total}, nil
}

// public pairs a window with the lifetime total, which is counted on its own
func (s *Svc) public(ctx context.Context, w growth.Window) ([]growth.Bucket, int, error) {
	buckets, err := s.series(ctx, w)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.RegistrationTotal(ctx)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "failed to count registrations")
	}
	return buckets, total, nil
}

func (s *Svc) series(ctx context.Context, w growth.Window) ([]growth.Bucket, error) {
	now := s.Now()
	events, err := s.Repo.RegistrationTimes(ctx, w.Start(now))
	if err != nil {
		return nil, perr.FromPostgres(err, "failed to load registration history")
	}
	return growth.Build(events, w, now), nil
}
