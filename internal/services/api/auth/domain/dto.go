// Package domain holds DTOs for admin sessions
package domain

import "time"

// LoginInput is the admin sign in form
type LoginInput struct {
	Email    string `json:"email" validate:"required,email,max=254" example:"admin@example.com"`
	Password string `json:"password" validate:"required,max=128" example:"correct horse battery staple"`
}

// SessionUser is the account a session belongs to
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is a freshly issued admin token
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      SessionUser `json:"user"`
}

// Current describes the session behind a request
type Current struct {
	User      SessionUser `json:"user"`
	TokenID   string      `json:"token_id"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// LoggedOut confirms a revoked session
type LoggedOut struct {
	Revoked bool `json:"revoked"`
}

// Seeded is the admin created by the seed flow
type Seeded struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
