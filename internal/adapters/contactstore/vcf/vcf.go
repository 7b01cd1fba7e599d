// Package vcf implements the contact store on a single vCard file.
//
// Contacts are keyed by UID. Cards without one get a UID minted on first
// list so identity stays stable across loads. Writes go through a temp
// file and rename so a crashed submit never leaves a half written store.
package vcf

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	perr "numwash/internal/platform/errors"
	"numwash/internal/services/cleanup/domain"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
)

// Store implements domain.StorePort against a .vcf file
type Store struct {
	path string
	mu   sync.Mutex
}

var _ domain.StorePort = (*Store)(nil)

// New constructs a contact store backed by the vCard file at path
func New(path string) *Store {
	if path == "" {
		panic("contactstore/vcf: requires a file path")
	}
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string { return s.path }

// Ping reports whether the backing file exists, for readiness probes
func (s *Store) Ping(_ context.Context) error {
	_, err := os.Stat(s.path)
	return err
}

type fileState struct {
	cards []vcard.Card
	byUID map[string]int
	dirty bool // set when UIDs were minted during load
}

// ListContactsWithPhones implements domain.StorePort
func (s *Store) ListContactsWithPhones(_ context.Context) ([]domain.StoredContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(false)
	if err != nil {
		return nil, err
	}
	// persist minted UIDs so identity survives the next load
	if st.dirty {
		if err := s.writeAll(st.cards); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "vcf rewrite failed")
		}
	}

	out := make([]domain.StoredContact, 0, len(st.cards))
	for _, card := range st.cards {
		out = append(out, fromCard(card))
	}
	return out, nil
}

// FetchContact implements domain.StorePort
func (s *Store) FetchContact(_ context.Context, id string) (domain.StoredContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(false)
	if err != nil {
		return domain.StoredContact{}, err
	}
	i, ok := st.byUID[id]
	if !ok {
		return domain.StoredContact{}, perr.NotFoundf("contact %q not found", id)
	}
	return fromCard(st.cards[i]), nil
}

// SubmitBatch implements domain.StorePort; the file is rewritten once after
// every mutation applied cleanly, so a rejected batch leaves it untouched
func (s *Store) SubmitBatch(_ context.Context, ms []domain.Mutation) error {
	if len(ms) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(false)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeBatchFailed, "vcf load failed")
	}
	for _, m := range ms {
		i, ok := st.byUID[m.ContactID]
		if !ok {
			return perr.Wrapf(
				perr.NotFoundf("contact %q not found", m.ContactID),
				perr.ErrorCodeBatchFailed, "batch of %d contacts rejected", len(ms),
			)
		}
		setPhones(st.cards[i], m.Phones)
	}
	if err := s.writeAll(st.cards); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeBatchFailed, "batch of %d contacts rejected", len(ms))
	}
	return nil
}

// SubmitOne implements domain.StorePort
func (s *Store) SubmitOne(_ context.Context, m domain.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(false)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeRecordFailed, "vcf load failed")
	}
	i, ok := st.byUID[m.ContactID]
	if !ok {
		return perr.NotFoundf("contact %q not found", m.ContactID)
	}
	setPhones(st.cards[i], m.Phones)
	if err := s.writeAll(st.cards); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeRecordFailed, "contact %s rejected", m.ContactID)
	}
	return nil
}

// SeedContacts upserts contacts by UID, creating the file when absent;
// used by jobs and tests to load fixtures
func (s *Store) SeedContacts(_ context.Context, cs []domain.StoredContact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(true)
	if err != nil {
		return err
	}
	for _, c := range cs {
		if i, ok := st.byUID[c.ID]; ok {
			st.cards[i] = toCard(c)
			continue
		}
		st.byUID[c.ID] = len(st.cards)
		st.cards = append(st.cards, toCard(c))
	}
	if err := s.writeAll(st.cards); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "vcf rewrite failed")
	}
	return nil
}

// load reads and decodes the whole file, minting UIDs where absent
func (s *Store) load(allowMissing bool) (*fileState, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if allowMissing && os.IsNotExist(err) {
			return &fileState{byUID: map[string]int{}}, nil
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "vcf open %q failed", s.path)
	}
	defer func() { _ = f.Close() }()

	st := &fileState{byUID: map[string]int{}}
	dec := vcard.NewDecoder(f)
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "vcf decode %q failed", s.path)
		}
		uid := card.Value(vcard.FieldUID)
		if uid == "" {
			uid = uuid.NewString()
			card.SetValue(vcard.FieldUID, uid)
			st.dirty = true
		}
		st.byUID[uid] = len(st.cards)
		st.cards = append(st.cards, card)
	}
	return st, nil
}

// writeAll encodes every card to a temp file then renames over the store
func (s *Store) writeAll(cards []vcard.Card) error {
	tmp := s.path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := vcard.NewEncoder(f)
	for _, card := range cards {
		// v4 encoding requires FN; fill from N when the source card lacks it
		if card.Value(vcard.FieldFormattedName) == "" {
			name := card.Value(vcard.FieldName)
			card.SetValue(vcard.FieldFormattedName, name)
		}
		vcard.ToV4(card)
		if err := enc.Encode(card); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return err
		}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.path)
}

// setPhones replaces every TEL field with the mutation's phones
func setPhones(card vcard.Card, phones []domain.StoredPhone) {
	delete(card, vcard.FieldTelephone)
	for _, p := range phones {
		f := &vcard.Field{Value: p.Raw}
		if p.Label != "" {
			f.Params = vcard.Params{vcard.ParamType: []string{p.Label}}
		}
		card.Add(vcard.FieldTelephone, f)
	}
}

// fromCard maps a vCard onto the stored contact shape
// Name strategy mirrors typical vCard handling: FN wins, then N
func fromCard(card vcard.Card) domain.StoredContact {
	c := domain.StoredContact{ID: card.Value(vcard.FieldUID)}
	if fn := card.Get(vcard.FieldFormattedName); fn != nil {
		c.DisplayName = fn.Value
	} else if n := card.Get(vcard.FieldName); n != nil {
		c.DisplayName = n.Value
	}
	for _, f := range card[vcard.FieldTelephone] {
		c.Phones = append(c.Phones, domain.StoredPhone{
			Label: f.Params.Get(vcard.ParamType),
			Raw:   f.Value,
		})
	}
	return c
}

// toCard builds a minimal card for a stored contact
func toCard(c domain.StoredContact) vcard.Card {
	card := vcard.Card{}
	card.SetValue(vcard.FieldUID, c.ID)
	card.SetValue(vcard.FieldFormattedName, c.DisplayName)
	setPhones(card, c.Phones)
	return card
}
