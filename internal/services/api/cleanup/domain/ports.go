package domain

import "context"

// ServicePort defines the service contract consumed by cleanup transport
type ServicePort interface {
	// Load replaces the in-memory snapshot from the contact store
	Load(ctx context.Context) (StateView, error)

	// State returns the current session snapshot
	State() StateView

	// Contacts returns the loaded contact set with pending actions
	Contacts() []ContactView

	// Detect classifies loaded numbers and stages suggested actions
	Detect() (StateView, error)

	// SetAction overrides the pending action for one phone entry
	SetAction(in SetActionInput) (StateView, error)

	// Apply executes pending edits against the contact store
	Apply(ctx context.Context) (ApplyResultView, error)
}
