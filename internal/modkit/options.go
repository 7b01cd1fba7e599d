package modkit

import (
	"net/http"

	phttp "numwash/internal/platform/net/http"
)

// Option tweaks the settings a module is built from
type Option func(*settings)

// settings is the accumulating state behind Build
type settings struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool
	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)
}

// WithName names the module for logs and the registry
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithPrefix mounts the module under a path prefix
func WithPrefix(prefix string) Option {
	return func(s *settings) { s.prefix = prefix }
}

// WithMiddlewares appends per-module middleware in mount order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(s *settings) { s.mw = append(s.mw, mw...) }
}

// WithPorts hands the module the ports another module published.
// The concrete type belongs to the consuming module
func WithPorts[T any](p T) Option {
	return func(s *settings) { s.ports = p }
}

// WithSwagger toggles the swagger mount for this module
func WithSwagger(enabled bool) Option {
	return func(s *settings) { s.swaggerOn = enabled }
}

// WithSubrouter overrides how the module derives its subrouter
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(s *settings) { s.subrouter = fn }
}

// WithRegister sets the hook that attaches extra endpoints after the
// module's own
func WithRegister(fn func(phttp.Router)) Option {
	return func(s *settings) { s.register = fn }
}
