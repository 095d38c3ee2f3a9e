// Package domain holds DTOs for user administration
package domain

import "time"

// User is the admin view of an account, the password hash is never part of it
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Name          string    `json:"name"`
	Phone         *string   `json:"phone,omitempty"`
	College       *string   `json:"college,omitempty"`
	City          *string   `json:"city,omitempty"`
	Avatar        *string   `json:"avatar,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
	Role          string    `json:"role"`
	ProfileStatus string    `json:"profile_status"`
	JoinedAt      time.Time `json:"joined_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListQuery filters the user list, newest joined first
type ListQuery struct {
	Page          int    `query:"page" validate:"omitempty,min=1,max=100000" example:"1"`
	Limit         int    `query:"limit" validate:"omitempty,min=1,max=100" example:"20"`
	Role          string `query:"role" validate:"omitempty,oneof=student admin" example:"student"`
	ProfileStatus string `query:"profile_status" validate:"omitempty,oneof=incomplete active suspended" example:"active"`
	Search        string `query:"search" validate:"omitempty,max=200" example:"coep"`
}

// List is one page of users
type List struct {
	Items []User
	Total int
	Page  int
	Limit int
}

// UpdateInput changes role, status or profile fields, absent fields are left alone
type UpdateInput struct {
	Role          *string `json:"role,omitempty" validate:"omitempty,oneof=student admin" example:"student"`
	ProfileStatus *string `json:"profile_status,omitempty" validate:"omitempty,oneof=incomplete active suspended" example:"active"`
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=100" example:"Arjun Mehta"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=20" example:"+91 98765 43210"`
	College       *string `json:"college,omitempty" validate:"omitempty,max=200" example:"COEP Pune"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100" example:"Pune"`
	Bio           *string `json:"bio,omitempty" validate:"omitempty,max=500" example:"Second year mechanical"`
}
