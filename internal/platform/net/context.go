// Package net provides utilities for working with request contexts
package net

import (
	"context"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyPrincipal ctxKey = "principal"

// Principal is the verified identity behind a request
// it is produced by the auth middleware from a session token
type Principal struct {
	UserID    string
	Role      string
	Email     string
	Name      string
	TokenID   string
	ExpiresAt time.Time
}

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithPrincipal annotates context with the authenticated principal
// a principal without a user id is ignored
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	if p.UserID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyPrincipal, p)
}

// PrincipalFrom returns the principal on the context if present
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(keyPrincipal).(Principal)
	return p, ok
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// UserID returns the authenticated user id on the context if present
func UserID(ctx context.Context) string {
	if p, ok := PrincipalFrom(ctx); ok {
		return p.UserID
	}
	return ""
}
