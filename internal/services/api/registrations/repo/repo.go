// Package repo provides postgres access for registrations
package repo

import (
	"context"
	"strconv"
	"time"

	"admissions/internal/modkit/repokit"
	"admissions/internal/platform/store"
)

// Repo is the minimal persistence surface for registrations
type Repo interface {
	Create(ctx context.Context, in NewRow) (string, error)
	List(ctx context.Context, f Filter, p repokit.Page) ([]Row, int, error)
	Update(ctx context.Context, id string, p Patch) (Row, error)
	Delete(ctx context.Context, id string) error
	LinkUser(ctx context.Context, id, userID string) (Row, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

// NewRow is an intake ready for insert, already normalized
type NewRow struct {
	Name             string
	Email            string
	Phone            string
	College          string
	CurrentCity      string
	PermanentAddress string
	Message          *string
}

// Row is a stored registration
type Row struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	College          string
	CurrentCity      string
	PermanentAddress string
	Message          *string
	Contacted        bool
	InternalNote     *string
	Status           string
	UserID           *string
	CreatedAt        time.Time
}

// Filter narrows List, zero fields match everything
type Filter struct {
	Contacted *bool
	Status    string
	Search    string
}

// Patch carries the admin editable fields, nil leaves a column unchanged
type Patch struct {
	Contacted    *bool
	InternalNote *string
	Status       *string
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
id::text, name, email, phone, college, current_city, permanent_address, message,
contacted, internal_note, status, user_id::text, created_at`

func scanRow(r store.Row) (Row, error) {
	var x Row
	err := r.Scan(&x.ID, &x.Name, &x.Email, &x.Phone, &x.College, &x.CurrentCity, &x.PermanentAddress,
		&x.Message, &x.Contacted, &x.InternalNote, &x.Status, &x.UserID, &x.CreatedAt)
	return x, err
}

func (r *queries) Create(ctx context.Context, in NewRow) (string, error) {
	const sql = `
insert into registrations (name, email, phone, college, current_city, permanent_address, message)
values ($1, $2, $3, $4, $5, $6, $7)
returning id::text
`
	var id string
	err := r.q.QueryRow(ctx, sql,
		in.Name, in.Email, in.Phone, in.College, in.CurrentCity, in.PermanentAddress, in.Message,
	).Scan(&id)
	return id, err
}

func (r *queries) List(ctx context.Context, f Filter, p repokit.Page) ([]Row, int, error) {
	var w repokit.Where
	if f.Contacted != nil {
		w.And("contacted = " + w.Arg(*f.Contacted))
	}
	if f.Status != "" {
		w.And("status = " + w.Arg(f.Status))
	}
	if f.Search != "" {
		pat := w.Arg(repokit.Contains(f.Search))
		w.And("(name ilike " + pat + " or email ilike " + pat + " or college ilike " + pat + ")")
	}

	total, err := store.Scalar[int](ctx, r.q, "select count(*) from registrations"+w.SQL(), w.Args()...)
	if err != nil {
		return nil, 0, err
	}

	args := append(w.Args(), p.Limit, p.Offset())
	sql := "select" + columns + " from registrations" + w.SQL() +
		" order by created_at desc, id desc" +
		" limit $" + strconv.Itoa(w.Next()) + " offset $" + strconv.Itoa(w.Next()+1)
	rows, err := store.Many(ctx, r.q, scanRow, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *queries) Update(ctx context.Context, id string, p Patch) (Row, error) {
	const sql = `
update registrations set
	contacted = coalesce($2, contacted),
	internal_note = coalesce($3, internal_note),
	status = coalesce($4, status)
where id = $1::uuid
returning` + columns
	return store.One(ctx, r.q, scanRow, sql, id, p.Contacted, p.InternalNote, p.Status)
}

// Delete returns perr.ErrNotFound when nothing was removed
func (r *queries) Delete(ctx context.Context, id string) error {
	return store.ExecOne(ctx, r.q, "delete from registrations where id = $1::uuid", id)
}

func (r *queries) LinkUser(ctx context.Context, id, userID string) (Row, error) {
	const sql = `
update registrations set user_id = $2::uuid
where id = $1::uuid
returning` + columns
	return store.One(ctx, r.q, scanRow, sql, id, userID)
}

func (r *queries) UserExists(ctx context.Context, userID string) (bool, error) {
	return store.Scalar[bool](ctx, r.q, "select exists (select 1 from users where id = $1::uuid)", userID)
}
