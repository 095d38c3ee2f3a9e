// Package repo provides postgres access for users
package repo

import (
	"context"
	"strconv"
	"time"

	"admissions/internal/modkit/repokit"
	"admissions/internal/platform/store"
)

// Repo is the minimal persistence surface for user administration
type Repo interface {
	List(ctx context.Context, f Filter, p repokit.Page) ([]Row, int, error)
	Update(ctx context.Context, id string, p Patch) (Row, error)
}

// Row is a stored user without credentials
type Row struct {
	ID            string
	Email         string
	EmailVerified bool
	Name          string
	Phone         *string
	College       *string
	City          *string
	Avatar        *string
	Bio           *string
	Role          string
	ProfileStatus string
	JoinedAt      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter narrows List, zero fields match everything
type Filter struct {
	Role          string
	ProfileStatus string
	Search        string
}

// Patch carries editable columns, nil leaves a column unchanged
type Patch struct {
	Role          *string
	ProfileStatus *string
	Name          *string
	Phone         *string
	College       *string
	City          *string
	Bio           *string
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

// password_hash is deliberately absent
const columns = `
id::text, email, email_verified, name, phone, college, city, avatar, bio, role, profile_status,
joined_at, created_at, updated_at`

func scanRow(r store.Row) (Row, error) {
	var x Row
	err := r.Scan(&x.ID, &x.Email, &x.EmailVerified, &x.Name, &x.Phone, &x.College, &x.City, &x.Avatar,
		&x.Bio, &x.Role, &x.ProfileStatus, &x.JoinedAt, &x.CreatedAt, &x.UpdatedAt)
	return x, err
}

func (r *queries) List(ctx context.Context, f Filter, p repokit.Page) ([]Row, int, error) {
	var w repokit.Where
	if f.Role != "" {
		w.And("role = " + w.Arg(f.Role))
	}
	if f.ProfileStatus != "" {
		w.And("profile_status = " + w.Arg(f.ProfileStatus))
	}
	if f.Search != "" {
		pat := w.Arg(repokit.Contains(f.Search))
		w.And("(name ilike " + pat + " or email ilike " + pat + " or college ilike " + pat + ")")
	}

	total, err := store.Scalar[int](ctx, r.q, "select count(*) from users"+w.SQL(), w.Args()...)
	if err != nil {
		return nil, 0, err
	}

	args := append(w.Args(), p.Limit, p.Offset())
	sql := "select" + columns + " from users" + w.SQL() +
		" order by joined_at desc, id desc" +
		" limit $" + strconv.Itoa(w.Next()) + " offset $" + strconv.Itoa(w.Next()+1)
	rows, err := store.Many(ctx, r.q, scanRow, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *queries) Update(ctx context.Context, id string, p Patch) (Row, error) {
	const sql = `
update users set
	role = coalesce($2, role),
	profile_status = coalesce($3, profile_status),
	name = coalesce($4, name),
	phone = coalesce($5, phone),
	college = coalesce($6, college),
	city = coalesce($7, city),
	bio = coalesce($8, bio),
	updated_at = now()
where id = $1::uuid
returning` + columns
	return store.One(ctx, r.q, scanRow, sql, id, p.Role, p.ProfileStatus, p.Name, p.Phone, p.College, p.City, p.Bio)
}
