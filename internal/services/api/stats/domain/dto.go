// Package domain holds DTOs for stats http and service contracts
package domain

import "admissions/internal/core/growth"

// RegistrationCounts splits registrations by follow up state
type RegistrationCounts struct {
	Total     int `json:"total" example:"120"`
	Pending   int `json:"pending" example:"30"`
	Contacted int `json:"contacted" example:"90"`
}

// ReviewCounts splits reviews by moderation state
// pending means never moderated, rejected means not approved with a reason
type ReviewCounts struct {
	Total    int `json:"total" example:"48"`
	Pending  int `json:"pending" example:"5"`
	Approved int `json:"approved" example:"40"`
	Rejected int `json:"rejected" example:"3"`
}

// UserCounts splits users by profile state
type UserCounts struct {
	Total  int `json:"total" example:"64"`
	Active int `json:"active" example:"51"`
}

// Counts groups the dashboard counters
type Counts struct {
	Registrations RegistrationCounts `json:"registrations"`
	Reviews       ReviewCounts       `json:"reviews"`
	Users         UserCounts         `json:"users"`
}

// ReviewSlice is one category of the review chart
type ReviewSlice struct {
	Status string `json:"status" example:"Approved"`
	Count  int    `json:"count" example:"40"`
	Fill   string `json:"fill" example:"#ECA400"`
}

// Dashboard is the admin overview
type Dashboard struct {
	Counts              Counts          `json:"counts"`
	RegistrationHistory []growth.Bucket `json:"registration_history"`
	ReviewStats         []ReviewSlice   `json:"review_stats"`
}

// Growth is the public monthly chart with the lifetime registration count
type Growth struct {
	Growth        []growth.Bucket `json:"growth"`
	TotalStudents int             `json:"total_students" example:"120"`
}

// DailyGrowth is the public daily chart with the lifetime registration count
type DailyGrowth struct {
	Growth []growth.Bucket `json:"growth"`
	Total  int             `json:"total" example:"120"`
}
