// Package repo provides postgres access for admin credentials
package repo

import (
	"context"

	"admissions/internal/modkit/repokit"
	"admissions/internal/platform/store"
)

// Repo is the persistence surface for sign in and seeding
type Repo interface {
	// ByEmail returns the account with its password hash, perr.ErrNotFound when missing
	ByEmail(ctx context.Context, email string) (Credential, error)
	CreateAdmin(ctx context.Context, in NewAdmin) (string, error)
}

// Credential is an account as seen by sign in
type Credential struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash *string
}

// NewAdmin is a seeded admin account
type NewAdmin struct {
	Email        string
	Name         string
	PasswordHash string
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

func (r *queries) ByEmail(ctx context.Context, email string) (Credential, error) {
	const sql = `
select id::text, email, name, role, password_hash
from users
where email = $1`
	return store.One(ctx, r.q, func(row store.Row) (Credential, error) {
		var c Credential
		err := row.Scan(&c.ID, &c.Email, &c.Name, &c.Role, &c.PasswordHash)
		return c, err
	}, sql, email)
}

func (r *queries) CreateAdmin(ctx context.Context, in NewAdmin) (string, error) {
	const sql = `
insert into users (email, name, password_hash, role, profile_status, email_verified)
values ($1, $2, $3, 'admin', 'active', true)
returning id::text`
	return store.Scalar[string](ctx, r.q, sql, in.Email, in.Name, in.PasswordHash)
}
