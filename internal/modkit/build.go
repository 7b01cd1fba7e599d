package modkit

import (
	"net/http"

	"numwash/internal/modkit/httpkit"
)

// Built is the assembled wiring a module reads back after Build
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool

	// router hooks, always non-nil after Build
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build folds opts into a Built, filling the router hooks with no-ops so
// callers never nil-check them
func Build(opts ...Option) Built {
	var s settings
	for _, o := range opts {
		o(&s)
	}

	b := Built{
		Name:      s.name,
		Prefix:    s.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), s.mw...),
		Ports:     s.ports,
		SwaggerOn: s.swaggerOn,
		Subrouter: s.subrouter,
		Register:  s.register,
	}
	if b.Subrouter == nil {
		b.Subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if b.Register == nil {
		b.Register = func(httpkit.Router) {}
	}
	return b
}
