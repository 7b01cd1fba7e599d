// Package store owns the SQL seam: a tiny querier surface, the pgx adapter
// behind it, and the openers that stand a healthy pool up
package store

import (
	"context"
	"errors"
	"fmt"

	"numwash/internal/platform/logger"
)

// Store bundles whichever backends the deployment enabled.
// The zero value is valid; disabled backends stay nil
type Store struct {
	// Log feeds the SQL tracer; zero means a silent zerolog logger
	Log logger.Logger

	// PG is the postgres seam, nil when the backend is off
	PG TxRunner
}

// Row is the single-row scan contract
type Row interface {
	Scan(dest ...any) error
}

// Rows is the minimal result-set surface repos iterate over
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the querying surface repos program against, identical inside
// and outside a transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactional execution on top of RowQuerier
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger marks seams that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open stands up the backends cfg enables; the rest stay nil
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, apply := range opts {
		if err := apply(s); err != nil {
			return nil, err
		}
	}

	// normalize a zero logger so subclients never nil-check
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		client, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = client
	}

	return s, nil
}

// Guard pings every seam that knows how, joining the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var failures []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			failures = append(failures, fmt.Errorf("pg: %w", err))
		}
	}
	return errors.Join(failures...)
}

// Close shuts down every opened backend; nil seams are skipped
func (s *Store) Close(_ context.Context) error {
	var failures []error
	if c, ok := s.PG.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}
