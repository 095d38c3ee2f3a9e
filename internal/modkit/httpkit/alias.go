// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "admissions/internal/platform/net/http"
	"admissions/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Page is the pagination metadata type
	Page = phttp.Page

	// ListBody is the data shape of paginated responses
	ListBody = phttp.ListBody

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// List returns a 200 response with items and pagination
func List(items any, total, page, limit int) Response {
	return phttp.List(items, total, page, limit)
}

// Query decodes and validates the query string into T
func Query[T any](r *http.Request) (T, error) { return bind.Query[T](r) }

// Param returns a named path parameter such as {id}
func Param(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// OptionalJSON binds and validates an optional body, an empty body yields the zero T
func OptionalJSON[T any](r *http.Request) (T, error) {
	return bind.ParseJSON[T](r, bind.JSONOptions{AllowEmptyBody: true})
}
