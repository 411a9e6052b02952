package http

import (
	"net/http"

	"github.com/gentlementlegen/assistive-pricing/internal/platform/net/http/bind"
)

// JSONHandler decodes the body into T through the binder and feeds it to fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return finish(fn(r, in))
	})
}

// CallHandler invokes fn without reading a request body
func CallHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return finish(fn(r))
	})
}

// finish wraps a handler's return pair. Plain values ride the success
// envelope; an explicit Response passes through untouched
func finish(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
