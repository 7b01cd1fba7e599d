package http

import (
	"net/http"

	"numwash/internal/platform/net/http/bind"
)

// outcome folds a handler's (value, error) pair into a Response
func outcome(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	return OK(out)
}

// JSONHandler binds the request body into T before calling fn.
// Bind failures short-circuit with the mapped error envelope.
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return outcome(fn(r, in))
	})
}

// JSONHandlerNoBody is JSONHandler for routes that take no request body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return outcome(fn(r))
	})
}
