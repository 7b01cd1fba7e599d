// Package module implements the cleanup module
package module

import (
	"net/http"

	"numwash/internal/modkit"
	"numwash/internal/modkit/httpkit"
	"numwash/internal/services/cleanup/domain"
	"numwash/internal/services/cleanup/service"
)

// Ports exposed by the cleanup module
type Ports struct {
	Session domain.SessionPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new cleanup module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("cleanup-session"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("cleanup module: expected WithPorts(cleanup/domain.Ports)")
	}
	if ports.Store == nil {
		panic("cleanup module: Ports missing Store")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.Events != 0 {
		cfg.Events = overrides.Events
	}

	session := service.New(ports.Store, deps.Log, service.Config{
		Workers: cfg.Workers,
		Events:  cfg.Events,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Session: session}
	return m
}

// Name satisfies modkit.Module
// distinct from the api transport module so both can share one registry
func (m *Module) Name() string { return "cleanup-session" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
