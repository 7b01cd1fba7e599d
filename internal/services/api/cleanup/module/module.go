// Package module wires cleanup into the API using modkit
package module

import (
	"net/http"

	modkit "numwash/internal/modkit"
	"numwash/internal/modkit/httpkit"
	str "numwash/internal/platform/strings"
	chttp "numwash/internal/services/api/cleanup/http"
	csvc "numwash/internal/services/api/cleanup/service"
	session "numwash/internal/services/cleanup/domain"
)

// Module implements the cleanup API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	ports any
	svc   csvc.Service
}

// Ports declares the required injected worker port(s) for this API module
type Ports struct {
	Session session.SessionPort
}

// New constructs the cleanup module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	defaults := []modkit.Option{
		modkit.WithName("cleanup"),
		modkit.WithPrefix("/cleanup"),
	}
	b := modkit.Build(append(defaults, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Session == nil {
		panic("cleanup API module requires Session port (from services/cleanup)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       csvc.New(injected.Session),
	}
	m.ports = adaptCleanupPort{svc: m.svc}
	m.register = m.routes(b.Register)
	return m
}

// routes binds the handlers and chains any caller-supplied registration
func (m *Module) routes(extra func(httpkit.Router)) func(httpkit.Router) {
	return func(r httpkit.Router) {
		chttp.Register(r, m.svc)
		if extra != nil {
			extra(r)
		}
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		if m.subrouter != nil {
			sub = m.subrouter(sub)
		}
		if m.register != nil {
			m.register(sub)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
