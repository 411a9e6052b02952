package httpkit

import "net/http"

// Verb sugar for route registration. The JSON variant decodes the body
// into T through the platform binder; the plain variants wrap body-less
// handlers in the response envelope. Only the verbs the API serves are
// covered here; new routes add their verb when they need it

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post mounts a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostJSON mounts a JSON-bound handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}
