// Package httpkit re-exports the platform http surface for modules
// modules route through these aliases instead of importing internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/net/http/bind"
)

type (
	// Envelope aliases the wire envelope
	Envelope = phttp.Envelope

	// Page aliases the pagination metadata
	Page = phttp.Page

	// Response aliases the return-style response value
	Response = phttp.Response

	// Handler aliases the platform handler
	Handler = phttp.Handler

	// Router aliases the platform router seam
	Router = phttp.Router

	// Middleware aliases the platform middleware shape
	Middleware = phttp.Middleware

	// FieldLevel aliases the binder's per-field validation view
	FieldLevel = bind.FieldLevel
)

// RegisterValidation installs a custom validation tag on the shared binder
func RegisterValidation(tag string, fn func(FieldLevel) bool) error {
	return bind.RegisterValidation(tag, fn)
}

// RegisterMessage installs the failure message for a custom tag, with {0}
// standing for the field name
func RegisterMessage(tag, message string) error {
	return bind.RegisterMessage(tag, message)
}

// OK wraps data in a 200 envelope response
func OK(data any) Response { return phttp.OK(data) }

// Created wraps data in a 201 envelope response
func Created(data any) Response { return phttp.Created(data) }

// NoContent produces an empty 204 response
func NoContent() Response { return phttp.NoContent() }

// Data reads the same as OK for query-style handlers
func Data(v any) Response { return phttp.Data(v) }

// Error builds a response whose status and envelope derive from err
func Error(err error) Response { return phttp.Error(err) }

// List wraps items in a 200 envelope carrying pagination metadata
func List(items any, total, page, size int, cursor string) Response {
	return phttp.List(items, total, page, size, cursor)
}

// JSON decodes the body into T through the platform binder before invoking
// fn; unknown fields are rejected and validation tags run
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(fn)
}

// Call adapts a bodyless handler; Response return values pass through unwrapped
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.CallHandler(fn)
}

// Handle adapts a Response-returning function directly
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
