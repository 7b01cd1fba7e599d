// Package service implements the cleanup session and apply engine
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"numwash/internal/core/classify"
	"numwash/internal/core/phone"
	perr "numwash/internal/platform/errors"
	"numwash/internal/platform/logger"
	"numwash/internal/services/cleanup/domain"
)

// Config for the cleanup service
type Config struct {
	Plan    phone.Plan
	Workers int // fallback submission parallelism
	Events  int // event channel buffer
}

// Session implements domain.SessionPort
// one aggregate per process; load and apply are serialized, everything
// else reads or mutates the snapshot under the same lock
type Session struct {
	store domain.StorePort
	log   logger.Logger
	cfg   Config

	mu       sync.Mutex
	inFlight bool
	phase    domain.Phase
	lastErr  string
	contacts []domain.Contact

	events chan domain.Event
}

// New constructs a cleanup session over the given store
func New(store domain.StorePort, log logger.Logger, cfg Config) *Session {
	if store == nil {
		panic("cleanup.Session requires a non nil StorePort")
	}
	if cfg.Plan.CallingCode == "" {
		cfg.Plan = phone.PT
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Events <= 0 {
		cfg.Events = 8
	}
	return &Session{
		store:  store,
		log:    log,
		cfg:    cfg,
		phase:  domain.PhaseIdle,
		events: make(chan domain.Event, cfg.Events),
	}
}

// Load replaces the snapshot from the store
// a failed load keeps the previous snapshot and phase and sets the error condition
func (s *Session) Load(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return domain.State{}, perr.Busyf("load or apply already in flight")
	}
	s.inFlight = true
	prev := s.phase
	s.phase = domain.PhaseLoading
	s.publishLocked()
	s.mu.Unlock()

	rows, err := s.store.ListContactsWithPhones(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.phase = prev
		s.lastErr = err.Error()
		s.publishLocked()
		s.log.Error().Err(err).Msg("contact load failed")
		return s.stateLocked(), err
	}
	s.contacts = buildSnapshot(rows)
	s.phase = domain.PhaseReady
	s.lastErr = ""
	s.publishLocked()
	s.log.Info().Int("contacts", len(s.contacts)).Msg("contacts loaded")
	return s.stateLocked(), nil
}

// State returns the current session snapshot
func (s *Session) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Contacts returns a copy of the loaded contact set
func (s *Session) Contacts() []domain.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneContacts(s.contacts)
}

// Detect runs the classifier over the loaded set and stages suggested actions
func (s *Session) Detect() (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseReady {
		return s.stateLocked(), perr.Conflictf("detect requires a ready session, phase is %s", s.phase)
	}
	for i := range s.contacts {
		c := &s.contacts[i]
		sugg := classify.Suggest(c.RawNumbers(), s.cfg.Plan)
		for j := range c.Phones {
			c.Phones[j].Action = sugg[j].Action
			c.Phones[j].Reason = sugg[j].NonActionable
		}
	}
	return s.stateLocked(), nil
}

// SetAction overrides the pending action for one phone entry
func (s *Session) SetAction(contactID, phoneID string, a classify.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseReady {
		return perr.Conflictf("action override requires a ready session, phase is %s", s.phase)
	}
	for i := range s.contacts {
		if s.contacts[i].ID != contactID {
			continue
		}
		for j := range s.contacts[i].Phones {
			if s.contacts[i].Phones[j].ID == phoneID {
				s.contacts[i].Phones[j].Action = a
				return nil
			}
		}
		return perr.NotFoundf("phone %s not found on contact %s", phoneID, contactID)
	}
	return perr.NotFoundf("contact %s not found", contactID)
}

// Apply executes pending edits and reloads the snapshot inside the Applying phase
func (s *Session) Apply(ctx context.Context) (domain.ApplyResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return domain.ApplyResult{}, perr.Busyf("load or apply already in flight")
	}
	if s.phase != domain.PhaseReady {
		s.mu.Unlock()
		return domain.ApplyResult{}, perr.Conflictf("apply requires a ready session, phase is %s", s.phase)
	}
	parts := participants(s.contacts)
	s.inFlight = true
	s.phase = domain.PhaseApplying
	s.publishLocked()
	s.mu.Unlock()

	res := s.runApply(ctx, parts)

	// reload inside Applying so the snapshot reflects committed edits
	rows, lerr := s.store.ListContactsWithPhones(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.phase = domain.PhaseReady
	switch {
	case lerr != nil:
		s.lastErr = lerr.Error()
		s.log.Error().Err(lerr).Msg("reload after apply failed")
	case res.HadErrors():
		s.contacts = buildSnapshot(rows)
		s.lastErr = fmt.Sprintf("%d contacts failed to apply", res.Failed)
	default:
		s.contacts = buildSnapshot(rows)
		s.lastErr = ""
	}
	s.publishLocked()
	s.log.Info().
		Int("updated", res.Updated).
		Int("prefixed", res.Prefixed).
		Int("deleted", res.Deleted).
		Int("failed", res.Failed).
		Msg("apply finished")
	return res, nil
}

// Events exposes the state change feed
func (s *Session) Events() <-chan domain.Event { return s.events }

// publishLocked emits the current state without blocking; callers hold mu
func (s *Session) publishLocked() {
	ev := domain.Event{Phase: s.phase, Contacts: len(s.contacts), LastError: s.lastErr}
	select {
	case s.events <- ev:
	default: // slow consumer, drop
	}
}

func (s *Session) stateLocked() domain.State {
	phones := 0
	for i := range s.contacts {
		phones += len(s.contacts[i].Phones)
	}
	return domain.State{
		Phase:     s.phase,
		Contacts:  len(s.contacts),
		Phones:    phones,
		LastError: s.lastErr,
	}
}

// buildSnapshot turns store rows into session contacts with fresh entry ids
func buildSnapshot(rows []domain.StoredContact) []domain.Contact {
	out := make([]domain.Contact, 0, len(rows))
	for _, r := range rows {
		c := domain.Contact{
			ID:          r.ID,
			DisplayName: r.DisplayName,
			Phones:      make([]domain.PhoneEntry, 0, len(r.Phones)),
		}
		for _, p := range r.Phones {
			c.Phones = append(c.Phones, domain.PhoneEntry{
				ID:        uuid.NewString(),
				RawNumber: p.Raw,
				Label:     p.Label,
				Action:    classify.ActionSkip,
			})
		}
		out = append(out, c)
	}
	return out
}

// participants deep-copies contacts that carry at least one non-Skip action
func participants(src []domain.Contact) []domain.Contact {
	out := make([]domain.Contact, 0, len(src))
	for i := range src {
		if src[i].PendingEdits() == 0 {
			continue
		}
		c := src[i]
		c.Phones = append([]domain.PhoneEntry(nil), src[i].Phones...)
		out = append(out, c)
	}
	return out
}

func cloneContacts(src []domain.Contact) []domain.Contact {
	out := make([]domain.Contact, len(src))
	for i := range src {
		out[i] = src[i]
		out[i].Phones = append([]domain.PhoneEntry(nil), src[i].Phones...)
	}
	return out
}
