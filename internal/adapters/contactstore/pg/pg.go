// Package pg implements the contact store on Postgres.
//
// Contacts live in two tables: contacts holds identity and display name,
// contact_phones holds the ordered phone list. Submit operations replace a
// contact's phone rows wholesale inside a transaction.
package pg

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"
	"strings"

	"numwash/internal/modkit/repokit"
	perr "numwash/internal/platform/errors"
	"numwash/internal/platform/store"
	"numwash/internal/services/cleanup/domain"
)

type (
	queries struct{ q repokit.Queryer }
	binder  struct{}
)

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) *queries { return &queries{q: q} }

// Store implements domain.StorePort against Postgres
type Store struct {
	db     repokit.TxRunner
	binder repokit.Binder[*queries]
}

var _ domain.StorePort = (*Store)(nil)

// New constructs a contact store backed by the given TxRunner
func New(db repokit.TxRunner) *Store {
	if db == nil {
		panic("contactstore/pg: requires a non-nil TxRunner")
	}
	return &Store{db: db, binder: binder{}}
}

// EnsureSchema creates the contact tables when they do not exist yet
func (s *Store) EnsureSchema(ctx context.Context) error {
	return store.RunInTx(ctx, s.db, func(ctx context.Context, q store.RowQuerier) error {
		if _, err := q.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS contacts (
				id           TEXT PRIMARY KEY,
				display_name TEXT NOT NULL DEFAULT ''
			)`); err != nil {
			return err
		}
		_, err := q.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS contact_phones (
				contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
				position   INT  NOT NULL,
				label      TEXT NOT NULL DEFAULT '',
				raw        TEXT NOT NULL,
				PRIMARY KEY (contact_id, position)
			)`)
		return err
	})
}

// ListContactsWithPhones implements domain.StorePort
func (s *Store) ListContactsWithPhones(ctx context.Context) ([]domain.StoredContact, error) {
	var out []domain.StoredContact
	err := store.RunInTx(ctx, s.db, func(ctx context.Context, q store.RowQuerier) error {
		var err error
		out, err = s.binder.Bind(q).listAll(ctx)
		return err
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "contact store list failed")
	}
	return out, nil
}

// FetchContact implements domain.StorePort
func (s *Store) FetchContact(ctx context.Context, id string) (domain.StoredContact, error) {
	var out domain.StoredContact
	err := store.RunInTx(ctx, s.db, func(ctx context.Context, q store.RowQuerier) error {
		var err error
		out, err = s.binder.Bind(q).fetchOne(ctx, id)
		return err
	})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.StoredContact{}, err
		}
		return domain.StoredContact{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "contact store fetch failed")
	}
	return out, nil
}

// SubmitBatch implements domain.StorePort; all mutations commit or none do
func (s *Store) SubmitBatch(ctx context.Context, ms []domain.Mutation) error {
	if len(ms) == 0 {
		return nil
	}
	err := store.RunInTx(ctx, s.db, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		for _, m := range ms {
			if err := r.replacePhones(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeBatchFailed, "batch of %d contacts rejected", len(ms))
	}
	return nil
}

// SubmitOne implements domain.StorePort
func (s *Store) SubmitOne(ctx context.Context, m domain.Mutation) error {
	err := store.RunInTx(ctx, s.db, func(ctx context.Context, q store.RowQuerier) error {
		return s.binder.Bind(q).replacePhones(ctx, m)
	})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return err
		}
		return perr.Wrapf(err, perr.ErrorCodeRecordFailed, "contact %s rejected", m.ContactID)
	}
	return nil
}

func scanContact(r store.Row) (domain.StoredContact, error) {
	var c domain.StoredContact
	return c, r.Scan(&c.ID, &c.DisplayName)
}

func scanPhone(r store.Row) (domain.StoredPhone, error) {
	var p domain.StoredPhone
	return p, r.Scan(&p.Label, &p.Raw)
}

// listAll returns every contact with its phones in display order
func (r *queries) listAll(ctx context.Context) ([]domain.StoredContact, error) {
	out, err := store.Many(ctx, r.q, scanContact, `
		SELECT id, display_name
		FROM contacts
		ORDER BY display_name, id`)
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(out))
	for i, c := range out {
		idx[c.ID] = i
	}

	type phoneRow struct {
		contactID string
		phone     domain.StoredPhone
	}
	prs, err := store.Many(ctx, r.q, func(row store.Row) (phoneRow, error) {
		var pr phoneRow
		return pr, row.Scan(&pr.contactID, &pr.phone.Label, &pr.phone.Raw)
	}, `
		SELECT contact_id, label, raw
		FROM contact_phones
		ORDER BY contact_id, position`)
	if err != nil {
		return nil, err
	}

	for _, pr := range prs {
		if i, ok := idx[pr.contactID]; ok {
			out[i].Phones = append(out[i].Phones, pr.phone)
		}
	}
	return out, nil
}

// fetchOne returns a single contact or a NotFound error
func (r *queries) fetchOne(ctx context.Context, id string) (domain.StoredContact, error) {
	c, err := store.One(ctx, r.q, scanContact,
		`SELECT id, display_name FROM contacts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return domain.StoredContact{}, perr.NotFoundf("contact %q not found", id)
		}
		return domain.StoredContact{}, err
	}

	c.Phones, err = store.Many(ctx, r.q, scanPhone, `
		SELECT label, raw
		FROM contact_phones
		WHERE contact_id = $1
		ORDER BY position`, id)
	if err != nil {
		return domain.StoredContact{}, err
	}
	return c, nil
}

// replacePhones swaps a contact's phone rows for the mutation's list.
// The row lock keeps concurrent submits for the same contact serialized.
func (r *queries) replacePhones(ctx context.Context, m domain.Mutation) error {
	if _, err := store.Scalar[int](ctx, r.q,
		`SELECT 1 FROM contacts WHERE id = $1 FOR UPDATE`, m.ContactID); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return perr.NotFoundf("contact %q not found", m.ContactID)
		}
		return err
	}

	if _, err := store.Exec(ctx, r.q, `DELETE FROM contact_phones WHERE contact_id = $1`, m.ContactID); err != nil {
		return err
	}
	if len(m.Phones) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO contact_phones (contact_id, position, label, raw) VALUES `)
	args := make([]any, 0, len(m.Phones)*4)
	for i, p := range m.Phones {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*4 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d)", base, base+1, base+2, base+3)
		args = append(args, m.ContactID, i, p.Label, p.Raw)
	}
	_, err := store.Exec(ctx, r.q, sb.String(), args...)
	return err
}

// SeedContacts inserts contacts wholesale; used by jobs and tests to load fixtures
func (s *Store) SeedContacts(ctx context.Context, cs []domain.StoredContact) error {
	if len(cs) == 0 {
		return nil
	}
	return store.RunInTx(ctx, s.db, func(ctx context.Context, q store.RowQuerier) error {
		for _, c := range cs {
			if err := store.ExecOne(ctx, q, `
				INSERT INTO contacts (id, display_name) VALUES ($1, $2)
				ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name`,
				c.ID, c.DisplayName,
			); err != nil {
				return err
			}
			if _, err := store.Exec(ctx, q, `DELETE FROM contact_phones WHERE contact_id = $1`, c.ID); err != nil {
				return err
			}
			for i, p := range c.Phones {
				if err := store.ExecOne(ctx, q, `
					INSERT INTO contact_phones (contact_id, position, label, raw)
					VALUES ($1, $2, $3, $4)`,
					c.ID, i, p.Label, p.Raw,
				); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
