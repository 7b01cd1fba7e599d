package domain

import (
	"context"

	"numwash/internal/core/classify"
)

// StoredPhone is a phone exactly as the backing store holds it
type StoredPhone struct {
	Label string
	Raw   string
}

// StoredContact is a contact exactly as the backing store holds it
type StoredContact struct {
	ID          string
	DisplayName string
	Phones      []StoredPhone
}

// Mutation replaces a contact's phone list wholesale
type Mutation struct {
	ContactID string
	Phones    []StoredPhone
}

// StorePort is the external contact store contract
// implementations must map failures onto the platform error codes:
// Unavailable for unreachable stores, NotFound for missing contacts,
// BatchFailed for all-or-nothing batch rejections, RecordFailed per record
type StorePort interface {
	// ListContactsWithPhones returns every contact with its phones in store order
	ListContactsWithPhones(ctx context.Context) ([]StoredContact, error)

	// FetchContact returns the current authoritative record for one contact
	FetchContact(ctx context.Context, id string) (StoredContact, error)

	// SubmitBatch applies all mutations as a unit; nothing is committed on error
	SubmitBatch(ctx context.Context, ms []Mutation) error

	// SubmitOne applies a single contact mutation
	SubmitOne(ctx context.Context, m Mutation) error
}

// Ports are dependencies injected into the cleanup module
type Ports struct {
	Store StorePort // required
}

// SessionPort is the cleanup session contract consumed by transports
type SessionPort interface {
	// Load replaces the snapshot from the store; rejected with Busy while
	// another load or apply is in flight
	Load(ctx context.Context) (State, error)

	// State returns the current session snapshot
	State() State

	// Contacts returns a copy of the loaded contact set
	Contacts() []Contact

	// Detect runs the classifier over the loaded set and stages the
	// suggested actions; allowed only in Ready
	Detect() (State, error)

	// SetAction overrides the pending action for one phone entry
	SetAction(contactID, phoneID string, a classify.Action) error

	// Apply executes pending edits against the store and reloads
	Apply(ctx context.Context) (ApplyResult, error)

	// Events exposes the state change feed; sends never block, slow
	// consumers lose intermediate events
	Events() <-chan Event
}
