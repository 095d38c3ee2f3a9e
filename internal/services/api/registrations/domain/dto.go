// Package domain holds DTOs for registration http and service contracts
package domain

import "time"

// Status is the legacy pipeline status kept alongside the contacted flag
type Status string

// Statuses
const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// SubmitInput is the public registration form
type SubmitInput struct {
	Name             string  `json:"name" validate:"required,min=2,max=100" example:"Arjun Mehta"`
	Email            string  `json:"email" validate:"required,email,max=254" example:"arjun@example.com"`
	Phone            string  `json:"phone" validate:"required,min=7,max=20" example:"+91 98765 43210"`
	College          string  `json:"college" validate:"required,min=2,max=200" example:"COEP Pune"`
	CurrentCity      string  `json:"current_city" validate:"required,min=2,max=100" example:"Pune"`
	PermanentAddress string  `json:"permanent_address" validate:"required,min=5,max=500" example:"12 MG Road, Nagpur"`
	Message          *string `json:"message,omitempty" validate:"omitempty,max=1000" example:"Looking for a room from June"`
}

// Submitted is returned after a successful intake
type Submitted struct {
	ID string `json:"id" example:"5b0c3c0e-8f4e-4b52-9d55-3f1f0c7d2a11"`
}

// Registration is the admin view of a submission
type Registration struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	College          string    `json:"college"`
	CurrentCity      string    `json:"current_city"`
	PermanentAddress string    `json:"permanent_address"`
	Message          *string   `json:"message,omitempty"`
	Contacted        bool      `json:"contacted"`
	InternalNote     *string   `json:"internal_note,omitempty"`
	Status           Status    `json:"status"`
	UserID           *string   `json:"user_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListQuery filters the admin list, newest first
type ListQuery struct {
	Page      int    `query:"page" validate:"omitempty,min=1,max=100000" example:"1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100" example:"20"`
	Contacted *bool  `query:"contacted" example:"false"`
	Status    Status `query:"status" validate:"omitempty,oneof=pending contacted accepted rejected" example:"pending"`
	Search    string `query:"search" validate:"omitempty,max=200" example:"pune"`
}

// List is one page of registrations
type List struct {
	Items []Registration
	Total int
	Page  int
	Limit int
}

// UpdateInput patches admin managed fields, absent fields are left alone
type UpdateInput struct {
	Contacted    *bool   `json:"contacted,omitempty" example:"true"`
	InternalNote *string `json:"internal_note,omitempty" validate:"omitempty,max=2000" example:"Called, will visit on Sunday"`
	Status       *Status `json:"status,omitempty" validate:"omitempty,oneof=pending contacted accepted rejected" example:"contacted"`
}

// LinkInput attaches a registration to an existing user account
type LinkInput struct {
	UserID string `json:"user_id" validate:"required,uuid" example:"0d5f2c44-5a7e-4c1e-9e0b-2f1b8f9a6c30"`
}

// Deleted acknowledges a removal
type Deleted struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
