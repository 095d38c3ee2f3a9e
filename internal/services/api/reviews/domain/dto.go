// Package domain holds DTOs for review http and service contracts
package domain

import "time"

// DefaultRejectReason is stored when a moderator rejects without a reason
const DefaultRejectReason = "Not approved by moderator"

// SubmittedMessage is shown to a reviewer after a successful submission
const SubmittedMessage = "Thank you for your review! It will be published after moderation."

// Moderation states derived from the stamp columns
const (
	StatePending  = "pending"
	StateApproved = "approved"
	StateRejected = "rejected"
)

// SubmitInput is the public review form
type SubmitInput struct {
	Name    string  `json:"name" validate:"required,min=2,max=100" example:"Sneha Kulkarni"`
	Email   string  `json:"email" validate:"required,email,max=254" example:"sneha@example.com"`
	College string  `json:"college" validate:"required,min=2,max=200" example:"COEP Pune"`
	Rating  int     `json:"rating" validate:"required,min=1,max=5" example:"5"`
	Review  string  `json:"review" validate:"required,min=10,max=1000" example:"Calm place to study and great food"`
	UserID  *string `json:"user_id,omitempty" validate:"omitempty,uuid" example:"0d5f2c44-5a7e-4c1e-9e0b-2f1b8f9a6c30"`
}

// Submitted acknowledges a pending review
type Submitted struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// PublicReview is an approved review as shown on the site
// moderation fields and the reviewer email never leave the back office
type PublicReview struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	College   string    `json:"college"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is the admin view including the moderation stamp
type Review struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	College         string     `json:"college"`
	Rating          int        `json:"rating"`
	Review          string     `json:"review"`
	Approved        bool       `json:"approved"`
	State           string     `json:"state"`
	ModeratedBy     *string    `json:"moderated_by,omitempty"`
	ModeratedAt     *time.Time `json:"moderated_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	UserID          *string    `json:"user_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PublicQuery filters the public listing, approved reviews only
type PublicQuery struct {
	Page    int    `query:"page" validate:"omitempty,min=1,max=100000" example:"1"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=50" example:"10"`
	Rating  int    `query:"rating" validate:"omitempty,min=1,max=5" example:"5"`
	College string `query:"college" validate:"omitempty,max=200" example:"coep"`
}

// ListQuery filters the admin listing
type ListQuery struct {
	Page     int    `query:"page" validate:"omitempty,min=1,max=100000" example:"1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100" example:"20"`
	Approved *bool  `query:"approved" example:"false"`
	Rating   int    `query:"rating" validate:"omitempty,min=1,max=5" example:"3"`
	Search   string `query:"search" validate:"omitempty,max=200" example:"food"`
}

// PublicList is one page of approved reviews
type PublicList struct {
	Items []PublicReview
	Total int
	Page  int
	Limit int
}

// List is one page of reviews for moderators
type List struct {
	Items []Review
	Total int
	Page  int
	Limit int
}

// RejectInput optionally explains a rejection
type RejectInput struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500" example:"Contains personal contact details"`
}

// Deleted acknowledges a removal
type Deleted struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
