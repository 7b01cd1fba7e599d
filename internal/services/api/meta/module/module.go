// Package module packages the meta endpoints as a mountable API module
package module

import (
	"net/http"
	"time"

	modkit "numwash/internal/modkit"
	"numwash/internal/modkit/httpkit"
	str "numwash/internal/platform/strings"

	metahttp "numwash/internal/services/api/meta/http"
)

// Module satisfies modkit.Module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// Ports lists the optional handles the readiness probe inspects
type Ports struct {
	Contacts any
}

// New builds the meta module; construction time becomes the service start time
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	defaults := []modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}
	b := modkit.Build(append(defaults, opts...)...)
	injected, _ := b.Ports.(Ports)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}
	m.register = m.routes(injected, b.Register)
	return m
}

// routes binds the handler deps and chains any caller-supplied registration
func (m *Module) routes(injected Ports, extra func(httpkit.Router)) func(httpkit.Router) {
	return func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "numwash-api",
			StartedAt:   m.startedAt,
			PG:          m.deps.PG,
			Contacts:    injected.Contacts,
		})
		if extra != nil {
			extra(r)
		}
	}
}

// MountRoutes hangs the meta routes under the module prefix
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

// Name reports the module name, panicking when unset
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix reports the normalized mount path
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares reports the module-scoped middleware chain
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports exposes nothing; meta consumes ports, it does not provide them
func (m *Module) Ports() any { return nil }
