// Package token issues and verifies signed session tokens
package token

import (
	"context"
	"errors"
	"time"

	perr "admissions/internal/platform/errors"
	pnet "admissions/internal/platform/net"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the fixed session lifetime
const DefaultTTL = 24 * time.Hour

// ErrInvalid is returned for any token that fails verification
var ErrInvalid = perr.New(perr.ErrorCodeUnauthorized, "invalid or expired session")

// Config configures an Issuer
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Subject is the user a token is issued for
type Subject struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Claims is the signed token payload
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Principal converts verified claims into the request principal
func (c Claims) Principal() pnet.Principal {
	p := pnet.Principal{
		UserID:  c.Subject,
		Role:    c.Role,
		Email:   c.Email,
		Name:    c.Name,
		TokenID: c.ID,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}

// Issuer signs and verifies HS256 session tokens
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// New returns an Issuer, TTL defaults to DefaultTTL
func New(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token: secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: cfg.Secret, issuer: cfg.Issuer, ttl: ttl, now: time.Now}, nil
}

// TTL returns the session lifetime
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for s and returns it with its claims
func (i *Issuer) Issue(s Subject) (string, Claims, error) {
	now := i.now()
	c := Claims{
		Email: s.Email,
		Name:  s.Name,
		Role:  s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", Claims{}, perr.Wrap(err, perr.ErrorCodeUnknown, "failed to sign session")
	}
	return signed, c, nil
}

// Verify checks signature, method, issuer and expiry
// every failure maps to ErrInvalid
func (i *Issuer) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	var c Claims
	parsed, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid || c.Subject == "" || c.ID == "" {
		return Claims{}, ErrInvalid
	}
	return c, nil
}

// Denylist records revoked token ids until they would have expired anyway
type Denylist interface {
	Deny(ctx context.Context, id string, until time.Time) error
	Denied(ctx context.Context, id string) (bool, error)
}

// Resolver verifies a raw token and rejects revoked ones
// the returned func matches the bearer parser the auth middleware expects
func Resolver(iss *Issuer, deny Denylist) func(ctx context.Context, raw string) (pnet.Principal, error) {
	return func(ctx context.Context, raw string) (pnet.Principal, error) {
		c, err := iss.Verify(raw)
		if err != nil {
			return pnet.Principal{}, err
		}
		if deny != nil {
			revoked, err := deny.Denied(ctx, c.ID)
			if err != nil {
				return pnet.Principal{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "session store unavailable")
			}
			if revoked {
				return pnet.Principal{}, ErrInvalid
			}
		}
		return c.Principal(), nil
	}
}
