package service

import (
	"context"
	"sync"

	"numwash/internal/core/classify"
	"numwash/internal/services/cleanup/domain"
)

// prepared is one participant staged for the batch submission
type prepared struct {
	mut      domain.Mutation
	prefixed int
	deleted  int
}

// runApply submits all participants as one batch, falling back to
// per-contact submissions when the batch fails as a unit
// a contact counts toward exactly one of Updated or Failed and is
// attempted at most twice
func (s *Session) runApply(ctx context.Context, parts []domain.Contact) domain.ApplyResult {
	var res domain.ApplyResult

	staged := make([]prepared, 0, len(parts))
	for i := range parts {
		fetched, err := s.store.FetchContact(ctx, parts[i].ID)
		if err != nil {
			res.Failed++
			s.log.Warn().Err(err).Str("contact", parts[i].ID).Msg("fetch before batch failed")
			continue
		}
		mut, pref, del := s.buildMutation(parts[i], fetched)
		staged = append(staged, prepared{mut: mut, prefixed: pref, deleted: del})
	}
	if len(staged) == 0 {
		return res
	}

	ms := make([]domain.Mutation, len(staged))
	for i := range staged {
		ms[i] = staged[i].mut
	}
	if err := s.store.SubmitBatch(ctx, ms); err != nil {
		// nothing committed; counters restart from zero and every
		// participant gets exactly one more attempt
		s.log.Warn().Err(err).Int("contacts", len(parts)).Msg("batch submit failed, retrying per contact")
		return s.fallback(ctx, parts)
	}

	for i := range staged {
		res.Updated++
		res.Prefixed += staged[i].prefixed
		res.Deleted += staged[i].deleted
	}
	return res
}

// fallback re-runs the per-contact cycle for every participant with
// bounded parallel workers, merging results after the wait
func (s *Session) fallback(ctx context.Context, parts []domain.Contact) domain.ApplyResult {
	type outcome struct {
		ok       bool
		prefixed int
		deleted  int
	}
	out := make([]outcome, len(parts))

	sem := make(chan struct{}, s.cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range parts {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			fetched, err := s.store.FetchContact(ctx, parts[i].ID)
			if err != nil {
				s.log.Warn().Err(err).Str("contact", parts[i].ID).Msg("fetch in fallback failed")
				return
			}
			mut, pref, del := s.buildMutation(parts[i], fetched)
			if err := s.store.SubmitOne(ctx, mut); err != nil {
				s.log.Warn().Err(err).Str("contact", parts[i].ID).Msg("single submit failed")
				return
			}
			out[i] = outcome{ok: true, prefixed: pref, deleted: del}
		}(i)
	}
	wg.Wait()

	var res domain.ApplyResult
	for i := range out {
		if out[i].ok {
			res.Updated++
			res.Prefixed += out[i].prefixed
			res.Deleted += out[i].deleted
		} else {
			res.Failed++
		}
	}
	return res
}

// buildMutation reconciles a participant's staged actions onto the
// authoritative record and returns the replacement phone list
//
// fetched phones with no matching snapshot entry pass through untouched,
// snapshot entries with no fetched counterpart are moot, and entries
// that no longer canonicalize pass through unmutated
func (s *Session) buildMutation(c domain.Contact, fetched domain.StoredContact) (domain.Mutation, int, int) {
	consumed := make([]bool, len(c.Phones))
	next := make([]domain.StoredPhone, 0, len(fetched.Phones))
	prefixed, deleted := 0, 0

	for _, fp := range fetched.Phones {
		var entry *domain.PhoneEntry
		for i := range c.Phones {
			if consumed[i] {
				continue
			}
			if c.Phones[i].Label == fp.Label && c.Phones[i].RawNumber == fp.Raw {
				consumed[i] = true
				entry = &c.Phones[i]
				break
			}
		}
		if entry == nil {
			next = append(next, fp)
			continue
		}
		switch entry.Action {
		case classify.ActionDelete:
			deleted++
		case classify.ActionAddPrefix, classify.ActionRemoveSpaces:
			canon, err := s.cfg.Plan.Canonical(fp.Raw)
			if err != nil {
				next = append(next, fp)
				continue
			}
			next = append(next, domain.StoredPhone{Label: fp.Label, Raw: canon})
			if entry.Action == classify.ActionAddPrefix {
				prefixed++
			}
		default:
			next = append(next, fp)
		}
	}
	return domain.Mutation{ContactID: c.ID, Phones: next}, prefixed, deleted
}
