// Package httpkit is the module-facing face of the platform http package.
// Modules route and respond through these aliases so only the platform tree
// imports internal/platform/net/http directly.
package httpkit

import (
	"net/http"

	phttp "numwash/internal/platform/net/http"
	"numwash/internal/platform/net/http/bind"
)

type (
	// Envelope is the wire envelope every response marshals into
	Envelope = phttp.Envelope

	// Page carries list pagination metadata
	Page = phttp.Page

	// Response pairs a status with the payload to envelope
	Response = phttp.Response

	// Handler is the platform handler shape
	Handler = phttp.Handler

	// Router is the platform routing seam
	Router = phttp.Router
)

// OK wraps data in a 200
func OK(data any) Response { return phttp.OK(data) }

// Created wraps data in a 201
func Created(data any) Response { return phttp.Created(data) }

// NoContent is the empty 204
func NoContent() Response { return phttp.NoContent() }

// Data is OK under the platform's other name
func Data(v any) Response { return phttp.Data(v) }

// Error defers status and envelope to the platform error mapping
func Error(err error) Response { return phttp.Error(err) }

// List wraps items plus pagination in a 200
func List(items any, total, page, size int, cursor string) Response {
	return phttp.List(items, total, page, size, cursor)
}

// asResponse folds a handler's (value, error) pair into a Response.
// Handlers that built their own Response hand it through untouched
func asResponse(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(phttp.Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// JSON binds the request body into T, validation included, then envelopes
// whatever fn returns
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return asResponse(fn(r, in))
	})
}

// Call adapts a body-less handler onto the envelope
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return asResponse(fn(r))
	})
}

// Handle adapts a Response-returning function directly
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
