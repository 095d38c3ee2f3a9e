// Package repo provides postgres access for stats
package repo

import (
	"context"
	"time"

	"admissions/internal/modkit/repokit"
	"admissions/internal/platform/store"
)

// Repo is the minimal persistence surface for stats
type Repo interface {
	Counts(ctx context.Context) (Counts, error)
	// RegistrationTimes returns created_at of every registration at or after since
	RegistrationTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	RegistrationTotal(ctx context.Context) (int, error)
}

// Counts is the flat counter row behind the dashboard
type Counts struct {
	Registrations          int
	RegistrationsPending   int
	RegistrationsContacted int
	Reviews                int
	ReviewsPending         int
	ReviewsApproved        int
	ReviewsRejected        int
	Users                  int
	UsersActive            int
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Counts(ctx context.Context) (Counts, error) {
	// one statement so every counter reads the same snapshot
	const sql = `
select
	(select count(*) from registrations),
	(select count(*) from registrations where not contacted),
	(select count(*) from registrations where contacted),
	(select count(*) from reviews),
	(select count(*) from reviews where not approved and rejection_reason is null),
	(select count(*) from reviews where approved),
	(select count(*) from reviews where not approved and rejection_reason is not null),
	(select count(*) from users),
	(select count(*) from users where profile_status = 'active')`
	var c Counts
	err := r.q.QueryRow(ctx, sql).Scan(
		&c.Registrations, &c.RegistrationsPending, &c.RegistrationsContacted,
		&c.Reviews, &c.ReviewsPending, &c.ReviewsApproved, &c.ReviewsRejected,
		&c.Users, &c.UsersActive,
	)
	return c, err
}

func (r *queries) RegistrationTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	const sql = `
select created_at
from registrations
where created_at >= $1
order by created_at asc`
	return store.Many(ctx, r.q, func(row store.Row) (time.Time, error) {
		var t time.Time
		err := row.Scan(&t)
		return t, err
	}, sql, since)
}

func (r *queries) RegistrationTotal(ctx context.Context) (int, error) {
	return store.Scalar[int](ctx, r.q, `select count(*) from registrations`)
}
