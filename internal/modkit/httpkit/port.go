// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"context"
	"net/http"
	"strings"

	perrs "admissions/internal/platform/errors"
	pnet "admissions/internal/platform/net"
)

// ErrMissingBearer is returned when a request carries no usable bearer token
var ErrMissingBearer = perrs.Unauthorizedf("missing bearer token")

// BearerToken returns the raw token from an Authorization Bearer header
// the scheme is matched case insensitively and surrounding spaces are dropped
func BearerToken(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const scheme = "bearer"
	if len(s) <= len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return "", ErrMissingBearer
	}
	raw := strings.TrimSpace(s[len(scheme):])
	if raw == "" {
		return "", ErrMissingBearer
	}
	return raw, nil
}

// TokenFunc verifies a raw bearer token and returns the principal behind it
type TokenFunc func(ctx context.Context, token string) (pnet.Principal, error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the principal from an Authorization Bearer token
// parser failures collapse to one unauthorized error, an unavailable session store passes through
func (p *Port) Parse(r *http.Request) (pnet.Principal, error) {
	raw, err := BearerToken(r)
	if err != nil {
		return pnet.Principal{}, err
	}
	if p.parse == nil {
		return pnet.Principal{}, perrs.Unauthorizedf("invalid bearer token")
	}

	who, err := p.parse(r.Context(), raw)
	if perrs.IsCode(err, perrs.ErrorCodeUnavailable) {
		// the token itself may be fine
		return pnet.Principal{}, err
	}
	if err != nil || who.UserID == "" {
		return pnet.Principal{}, perrs.Unauthorizedf("invalid bearer token")
	}
	return who, nil
}
