// Package authz is the admin authorization guard
//
// The guard is applied twice: once at the transport boundary for every path
// under the admin prefix, and again inside each admin action before any
// repository call. Both layers call RequireAdmin so neither relies on the other
package authz

import (
	"context"

	perr "admissions/internal/platform/errors"
	pnet "admissions/internal/platform/net"
)

// Role is the role claim carried by a session
type Role string

const (
	// RoleAdmin may use the back office
	RoleAdmin Role = "admin"
	// RoleStudent is a regular signed in user
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleStudent }

// Claims is the verified session principal
type Claims = pnet.Principal

// Actor is the identity an admin action runs as
type Actor struct {
	ID   string
	Role Role
}

// Guard failures
var (
	ErrUnauthenticated = perr.New(perr.ErrorCodeUnauthorized, "authentication required")
	ErrForbidden       = perr.New(perr.ErrorCodeForbidden, "admin access required")
)

// RequireAdmin admits only sessions carrying the admin role
// nil claims or claims without a subject fail with ErrUnauthenticated
func RequireAdmin(c *Claims) (Actor, error) {
	if c == nil || c.UserID == "" {
		return Actor{}, ErrUnauthenticated
	}
	if Role(c.Role) != RoleAdmin {
		return Actor{}, ErrForbidden
	}
	return Actor{ID: c.UserID, Role: RoleAdmin}, nil
}

// FromContext returns the claims the auth layer placed on ctx, or nil
func FromContext(ctx context.Context) *Claims {
	p, ok := pnet.PrincipalFrom(ctx)
	if !ok {
		return nil
	}
	return &p
}

// RequireAdminCtx runs RequireAdmin against the claims on ctx
func RequireAdminCtx(ctx context.Context) (Actor, error) {
	return RequireAdmin(FromContext(ctx))
}

// IsUnauthenticated reports whether err is a missing or invalid session
func IsUnauthenticated(err error) bool { return perr.IsCode(err, perr.ErrorCodeUnauthorized) }

// IsForbidden reports whether err is an authenticated non admin
func IsForbidden(err error) bool { return perr.IsCode(err, perr.ErrorCodeForbidden) }
