// Package repo provides postgres access for reviews
package repo

import (
	"context"
	"strconv"
	"time"

	"admissions/internal/modkit/repokit"
	"admissions/internal/platform/store"
)

// Repo is the minimal persistence surface for reviews
type Repo interface {
	Create(ctx context.Context, in NewRow) (string, error)
	List(ctx context.Context, f Filter, p repokit.Page) ([]Row, int, error)
	Moderate(ctx context.Context, id string, s Stamp) (Row, error)
	Delete(ctx context.Context, id string) error
}

// NewRow is a normalized submission, always stored unapproved
type NewRow struct {
	Name    string
	Email   string
	College string
	Rating  int
	Review  string
	UserID  *string
}

// Row is a stored review
type Row struct {
	ID              string
	Name            string
	Email           string
	College         string
	Rating          int
	Review          string
	Approved        bool
	ModeratedBy     *string
	ModeratedAt     *time.Time
	RejectionReason *string
	UserID          *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter narrows List, zero fields match everything
// College is a substring match on college only, Search spans every text column
type Filter struct {
	Approved *bool
	Rating   int
	College  string
	Search   string
}

// Stamp is a complete moderation decision written in one statement
type Stamp struct {
	Approved bool
	Reason   *string
	By       string
	At       time.Time
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

const columns = `
id::text, name, email, college, rating, review, approved, moderated_by::text, moderated_at,
rejection_reason, user_id::text, created_at, updated_at`

func scanRow(r store.Row) (Row, error) {
	var x Row
	var rating int16
	err := r.Scan(&x.ID, &x.Name, &x.Email, &x.College, &rating, &x.Review, &x.Approved,
		&x.ModeratedBy, &x.ModeratedAt, &x.RejectionReason, &x.UserID, &x.CreatedAt, &x.UpdatedAt)
	x.Rating = int(rating)
	return x, err
}

func (r *queries) Create(ctx context.Context, in NewRow) (string, error) {
	const sql = `
insert into reviews (name, email, college, rating, review, user_id)
values ($1, $2, $3, $4, $5, $6::uuid)
returning id::text
`
	var id string
	err := r.q.QueryRow(ctx, sql, in.Name, in.Email, in.College, in.Rating, in.Review, in.UserID).Scan(&id)
	return id, err
}

func (r *queries) List(ctx context.Context, f Filter, p repokit.Page) ([]Row, int, error) {
	var w repokit.Where
	if f.Approved != nil {
		w.And("approved = " + w.Arg(*f.Approved))
	}
	if f.Rating > 0 {
		w.And("rating = " + w.Arg(f.Rating))
	}
	if f.College != "" {
		w.And("college ilike " + w.Arg(repokit.Contains(f.College)))
	}
	if f.Search != "" {
		pat := w.Arg(repokit.Contains(f.Search))
		w.And("(name ilike " + pat + " or email ilike " + pat + " or college ilike " + pat + " or review ilike " + pat + ")")
	}

	total, err := store.Scalar[int](ctx, r.q, "select count(*) from reviews"+w.SQL(), w.Args()...)
	if err != nil {
		return nil, 0, err
	}

	args := append(w.Args(), p.Limit, p.Offset())
	sql := "select" + columns + " from reviews" + w.SQL() +
		" order by created_at desc, id desc" +
		" limit $" + strconv.Itoa(w.Next()) + " offset $" + strconv.Itoa(w.Next()+1)
	rows, err := store.Many(ctx, r.q, scanRow, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Moderate writes every stamp column together so a committed row is never half moderated
func (r *queries) Moderate(ctx context.Context, id string, s Stamp) (Row, error) {
	const sql = `
update reviews set
	approved = $2,
	rejection_reason = $3,
	moderated_by = $4::uuid,
	moderated_at = $5,
	updated_at = $5
where id = $1::uuid
returning` + columns
	return store.One(ctx, r.q, scanRow, sql, id, s.Approved, s.Reason, s.By, s.At)
}

// Delete returns perr.ErrNotFound when nothing was removed
func (r *queries) Delete(ctx context.Context, id string) error {
	return store.ExecOne(ctx, r.q, "delete from reviews where id = $1::uuid", id)
}
