package http

import "net/http"

// Handler is what routes mount; an alias, so stdlib handlers drop in unchanged
type Handler = func(http.ResponseWriter, *http.Request)

// Middleware is the usual wrapper shape, aliased for signature brevity
type Middleware = func(http.Handler) http.Handler

// Router narrows chi to the surface modules may touch. Group shares the
// parent middleware stack, Route mounts a fresh one under its pattern
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Head(path string, h Handler)
	Options(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...Middleware)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux exposes the underlying handler for serving and tests
	Mux() http.Handler
}
