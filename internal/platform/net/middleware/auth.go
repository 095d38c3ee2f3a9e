package middleware

import (
	"net/http"

	pnet "admissions/internal/platform/net"
)

// AuthPort resolves the caller behind a request
type AuthPort interface {
	// Parse returns the verified principal or an error
	Parse(r *http.Request) (pnet.Principal, error)
}
