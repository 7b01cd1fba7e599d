// Package net holds request scoped context helpers shared by the HTTP stack
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores reqID where chi middleware expects it, so handlers
// and access logs resolve the same id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on the context, or empty
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
