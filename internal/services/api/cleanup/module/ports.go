package module

import (
	"context"

	cdom "numwash/internal/services/api/cleanup/domain"
	csvc "numwash/internal/services/api/cleanup/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptCleanupPort adapts the cleanup service to the domain port interface
type adaptCleanupPort struct{ svc csvc.Service }

// Load implements the domain ServicePort interface
func (a adaptCleanupPort) Load(ctx context.Context) (cdom.StateView, error) {
	return a.svc.Load(ctx)
}

// State implements the domain ServicePort interface
func (a adaptCleanupPort) State() cdom.StateView { return a.svc.State() }

// Contacts implements the domain ServicePort interface
func (a adaptCleanupPort) Contacts() []cdom.ContactView { return a.svc.Contacts() }

// Detect implements the domain ServicePort interface
func (a adaptCleanupPort) Detect() (cdom.StateView, error) { return a.svc.Detect() }

// SetAction implements the domain ServicePort interface
func (a adaptCleanupPort) SetAction(in cdom.SetActionInput) (cdom.StateView, error) {
	return a.svc.SetAction(in)
}

// Apply implements the domain ServicePort interface
func (a adaptCleanupPort) Apply(ctx context.Context) (cdom.ApplyResultView, error) {
	return a.svc.Apply(ctx)
}
