// Package service contains admin sign in, sign out and seeding
package service

import (
	"context"
	"errors"

	"admissions/internal/core/authz"
	"admissions/internal/core/normalize"
	"admissions/internal/core/password"
	"admissions/internal/core/token"
	"admissions/internal/modkit/repokit"
	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/logger"
	"admissions/internal/platform/metrics"
	"admissions/internal/services/api/auth/domain"
	"admissions/internal/services/api/auth/repo"
)

// DefaultAdminName is used when the seed config carries no name
const DefaultAdminName = "Admin"

// Errors surfaced to clients
var (
	// ErrInvalidCredentials covers unknown email, non admin and wrong password alike
	ErrInvalidCredentials = perr.New(perr.ErrorCodeUnauthorized, "invalid admin credentials")
	ErrSeedDisabled       = perr.New(perr.ErrorCodeForbidden, "seeding is only allowed in development")
	ErrAdminExists        = perr.New(perr.ErrorCodeConflict, "admin user already exists")
)

// SeedConfig is the admin account the seed flow creates
type SeedConfig struct {
	Allowed  bool
	Email    string
	Password string
	Name     string
}

// Service defines the auth service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the auth service
type Svc struct {
	Repo    repo.Repo
	tokens  *token.Issuer
	revoked token.Denylist
	seed    SeedConfig
	metrics metrics.Recorder
	check   func(hash, plaintext string) error
}

// New constructs an auth service, revoked and rec may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], tokens *token.Issuer, revoked token.Denylist, seed SeedConfig, rec metrics.Recorder) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	if tokens == nil {
		panic("auth.Service requires a token issuer")
	}
	if revoked == nil {
		revoked = token.NewMemoryDenylist()
	}
	return &Svc{
		Repo:    binder.Bind(db),
		tokens:  tokens,
		revoked: revoked,
		seed:    seed,
		metrics: metrics.OrNoop(rec),
		check:   password.Check,
	}
}

// Login checks admin credentials and issues a session token
// every rejection looks the same so callers cannot probe which emails exist
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.Session, error) {
	email := normalize.Email(in.Email)
	log := logger.C(ctx)

	// every path below runs exactly one bcrypt comparison so timing matches
	hash, why := password.Decoy(), ""
	c, err := s.Repo.ByEmail(ctx, email)
	switch {
	case errors.Is(err, perr.ErrNotFound):
		why = "unknown email"
	case err != nil:
		return domain.Session{}, perr.FromPostgres(err, "failed to sign in")
	case authz.Role(c.Role) != authz.RoleAdmin:
		why = "not an admin"
	case c.PasswordHash == nil:
		why = "no password set"
	default:
		hash = *c.PasswordHash
	}
	if err := s.check(hash, in.Password); why == "" && err != nil {
		why = "wrong password"
	}
	if why != "" {
		return s.reject(ctx, why)
	}

	signed, claims, err := s.tokens.Issue(token.Subject{ID: c.ID, Email: c.Email, Name: c.Name, Role: c.Role})
	if err != nil {
		return domain.Session{}, err
	}
	s.metrics.IncLogin("success")
	log.Info().Str("user_id", c.ID).Str("jti", claims.ID).Msg("admin signed in")

	return domain.Session{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      domain.SessionUser{ID: c.ID, Email: c.Email, Name: c.Name, Role: c.Role},
	}, nil
}

func (s *Svc) reject(ctx context.Context, why string) (domain.Session, error) {
	s.metrics.IncLogin("failure")
	logger.C(ctx).Debug().Str("reason", why).Msg("admin sign in rejected")
	return domain.Session{}, ErrInvalidCredentials
}

// Logout revokes the session behind ctx until it would have expired
func (s *Svc) Logout(ctx context.Context) (domain.LoggedOut, error) {
	if _, err := authz.RequireAdminCtx(ctx); err != nil {
		return domain.LoggedOut{}, err
	}
	c := authz.FromContext(ctx)
	if c.TokenID == "" {
		return domain.LoggedOut{}, authz.ErrUnauthenticated
	}
	if err := s.revoked.Deny(ctx, c.TokenID, c.ExpiresAt); err != nil {
		return domain.LoggedOut{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "session store unavailable")
	}
	logger.C(ctx).Info().Str("user_id", c.UserID).Str("jti", c.TokenID).Msg("admin signed out")
	return domain.LoggedOut{Revoked: true}, nil
}

// Current returns the session behind ctx
func (s *Svc) Current(ctx context.Context) (domain.Current, error) {
	if _, err := authz.RequireAdminCtx(ctx); err != nil {
		return domain.Current{}, err
	}
	c := authz.FromContext(ctx)
	return domain.Current{
		User:      domain.SessionUser{ID: c.UserID, Email: c.Email, Name: c.Name, Role: c.Role},
		TokenID:   c.TokenID,
		ExpiresAt: c.ExpiresAt,
	}, nil
}

// Seed creates the configured admin account once
func (s *Svc) Seed(ctx context.Context) (domain.Seeded, error) {
	if !s.seed.Allowed {
		return domain.Seeded{}, ErrSeedDisabled
	}
	email := normalize.Email(s.seed.Email)
	if email == "" || s.seed.Password == "" {
		return domain.Seeded{}, perr.Validationf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	name := normalize.Text(s.seed.Name)
	if name == "" {
		name = DefaultAdminName
	}

	_, err := s.Repo.ByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.Seeded{}, ErrAdminExists
	case !errors.Is(err, perr.ErrNotFound):
		return domain.Seeded{}, perr.FromPostgres(err, "failed to seed admin")
	}

	hash, err := password.Hash(s.seed.Password)
	if err != nil {
		return domain.Seeded{}, err
	}
	id, err := s.Repo.CreateAdmin(ctx, repo.NewAdmin{Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return domain.Seeded{}, ErrAdminExists
		}
		return domain.Seeded{}, perr.FromPostgres(err, "failed to seed admin")
	}
	logger.C(ctx).Info().Str("user_id", id).Str("email", email).Msg("admin seeded")
	return domain.Seeded{ID: id, Email: email, Name: name}, nil
}
