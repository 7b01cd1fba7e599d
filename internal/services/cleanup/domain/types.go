// Package domain defines the types and interfaces for the cleanup service
package domain

import (
	"numwash/internal/core/classify"
	"numwash/internal/core/phone"
)

// PhoneEntry is one phone number attached to a loaded contact
// ID is a session scoped uuid assigned at load, never reused across reloads
type PhoneEntry struct {
	ID        string
	RawNumber string // exactly as the store returned it
	Label     string
	Action    classify.Action // pending edit, defaults Skip
	Reason    string          // non-actionable reason from the last detect, empty otherwise
}

// Digits returns the entry's normalized digit string
func (p PhoneEntry) Digits() string { return phone.Digits(p.RawNumber) }

// HasCountryPrefix reports whether the trimmed raw number begins with +
func (p PhoneEntry) HasCountryPrefix() bool { return phone.HasCountryPrefix(p.RawNumber) }

// HasWhitespace reports whether the raw number contains any whitespace
func (p PhoneEntry) HasWhitespace() bool { return phone.HasWhitespace(p.RawNumber) }

// Contact is a loaded contact with phones in store order
// ID is the store's own identifier and is never regenerated
type Contact struct {
	ID          string
	DisplayName string
	Phones      []PhoneEntry
}

// RawNumbers returns the raw number strings in store order
func (c Contact) RawNumbers() []string {
	out := make([]string, len(c.Phones))
	for i := range c.Phones {
		out[i] = c.Phones[i].RawNumber
	}
	return out
}

// HasDuplicates reports whether any two entries' digits are in a suffix relationship
func (c Contact) HasDuplicates() bool { return classify.HasDuplicates(c.RawNumbers()) }

// NeedsAction reports whether any entry lacks a country prefix or duplicates exist
func (c Contact) NeedsAction() bool { return classify.NeedsAction(c.RawNumbers()) }

// PendingEdits counts entries whose action is not Skip
func (c Contact) PendingEdits() int {
	n := 0
	for i := range c.Phones {
		if c.Phones[i].Action != classify.ActionSkip {
			n++
		}
	}
	return n
}

// Phase is the session lifecycle state
type Phase uint8

// Session phases; the error condition is orthogonal and lives on State
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseApplying
)

var phaseNames = [...]string{"idle", "loading", "ready", "applying"}

// String returns the lowercase wire name of the phase
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// State is a point-in-time snapshot of the session
type State struct {
	Phase     Phase
	Contacts  int
	Phones    int
	LastError string // empty when the error condition is clear
}

// Event notifies subscribers that the session state changed
type Event struct {
	Phase     Phase
	Contacts  int
	LastError string
}

// ApplyResult counts the outcome of one apply run
// a contact counts toward exactly one of Updated or Failed
type ApplyResult struct {
	Updated  int // contacts successfully submitted
	Prefixed int // entries whose prefix action landed inside submitted contacts
	Deleted  int // entries removed inside submitted contacts
	Failed   int // contacts that could not be submitted
}

// HadErrors reports whether any contact failed
func (r ApplyResult) HadErrors() bool { return r.Failed > 0 }
