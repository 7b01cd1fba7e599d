// Package service adapts the cleanup session onto wire shapes
package service

import (
	"context"

	"numwash/internal/core/classify"
	perr "numwash/internal/platform/errors"
	"numwash/internal/services/api/cleanup/domain"
	session "numwash/internal/services/cleanup/domain"
)

// Service defines the service contract for cleanup
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	session session.SessionPort
}

// New creates a new cleanup API service
func New(sp session.SessionPort) *Svc {
	if sp == nil {
		panic("cleanup.Service requires a non nil SessionPort")
	}
	return &Svc{session: sp}
}

// Load replaces the in-memory snapshot from the contact store
func (s *Svc) Load(ctx context.Context) (domain.StateView, error) {
	st, err := s.session.Load(ctx)
	if err != nil {
		return domain.StateView{}, err
	}
	return stateView(st), nil
}

// State returns the current session snapshot
func (s *Svc) State() domain.StateView { return stateView(s.session.State()) }

// Contacts returns the loaded contact set with pending actions
func (s *Svc) Contacts() []domain.ContactView {
	cs := s.session.Contacts()
	out := make([]domain.ContactView, 0, len(cs))
	for _, c := range cs {
		out = append(out, contactView(c))
	}
	return out
}

// Detect classifies loaded numbers and stages suggested actions
func (s *Svc) Detect() (domain.StateView, error) {
	st, err := s.session.Detect()
	if err != nil {
		return domain.StateView{}, err
	}
	return stateView(st), nil
}

// SetAction overrides the pending action for one phone entry
func (s *Svc) SetAction(in domain.SetActionInput) (domain.StateView, error) {
	a, ok := classify.ParseAction(in.Action)
	if !ok {
		return domain.StateView{}, perr.Newf(perr.ErrorCodeValidation, "unknown action %q", in.Action)
	}
	if err := s.session.SetAction(in.ContactID, in.PhoneID, a); err != nil {
		return domain.StateView{}, err
	}
	return stateView(s.session.State()), nil
}

// Apply executes pending edits against the contact store
func (s *Svc) Apply(ctx context.Context) (domain.ApplyResultView, error) {
	res, err := s.session.Apply(ctx)
	if err != nil {
		return domain.ApplyResultView{}, err
	}
	return domain.ApplyResultView{
		Updated:  res.Updated,
		Prefixed: res.Prefixed,
		Deleted:  res.Deleted,
		Failed:   res.Failed,
	}, nil
}

func stateView(st session.State) domain.StateView {
	return domain.StateView{
		Phase:     st.Phase.String(),
		Contacts:  st.Contacts,
		Phones:    st.Phones,
		LastError: st.LastError,
	}
}

func contactView(c session.Contact) domain.ContactView {
	phones := make([]domain.PhoneView, 0, len(c.Phones))
	for _, p := range c.Phones {
		phones = append(phones, domain.PhoneView{
			ID:     p.ID,
			Raw:    p.RawNumber,
			Label:  p.Label,
			Action: p.Action.String(),
			Reason: p.Reason,
		})
	}
	return domain.ContactView{
		ID:           c.ID,
		DisplayName:  c.DisplayName,
		Phones:       phones,
		NeedsAction:  c.NeedsAction(),
		PendingEdits: c.PendingEdits(),
	}
}
