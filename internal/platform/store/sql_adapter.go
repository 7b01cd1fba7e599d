package store

import (
	"context"
	"errors"
	"time"

	"numwash/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxHandle is the querying slice of pgx shared by *pgxpool.Pool and pgx.Tx,
// so pooled and transactional statements run through one code path
type pgxHandle interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// traced satisfies RowQuerier on top of any pgx handle and hands every
// finished statement to the tracer
type traced struct {
	h      pgxHandle
	tracer pg.QueryTracer
	slowUS int64
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.h.Exec(ctx, sql, args...)
	t.report(ctx, sql, args, start, err)
	return cmdTag{ct}, err
}

func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.h.Query(ctx, sql, args...)
	// traced at open; scan time is not included
	t.report(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rowSet{r: rs}, nil
}

func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.h.QueryRow(ctx, sql, args...)
	// pgx defers execution until Scan, so the trace fires afterwards with
	// the scan error included
	return tracedRow{
		r: r,
		after: func(scanErr error) {
			t.report(ctx, sql, args, start, scanErr)
		},
	}
}

// report emits one query event. A request id on ctx rides along so query
// logs correlate with access logs.
func (t traced) report(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	us := time.Since(start).Microseconds()
	reqID, _ := RequestID(ctx)
	t.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      t.slowUS >= 0 && us >= t.slowUS,
		RequestID: reqID,
	})
}

// pgRunner adapts pg.PG to TxRunner. Pool statements go through the embedded
// traced handle; Tx swaps that handle for the open transaction.
type pgRunner struct {
	traced
	p *pg.PG
}

func newPGRunner(p *pg.PG) *pgRunner {
	slow := int64(p.SlowMs) * 1000
	return &pgRunner{
		traced: traced{h: p.Pool, tracer: p.Tracer, slowUS: slow},
		p:      p,
	}
}

func (a *pgRunner) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil runner")
	}
	var n int
	return a.QueryRow(ctx, "SELECT 1").Scan(&n)
}

func (a *pgRunner) Close() error { a.p.Close(); return nil }

func (a *pgRunner) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(traced{h: tx, tracer: a.tracer, slowUS: a.slowUS}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// thin shims from pgx types onto the package's Row, Rows, and CommandTag

type tracedRow struct {
	r     pgx.Row
	after func(error)
}

func (x tracedRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rowSet struct{ r pgx.Rows }

func (x rowSet) Next() bool            { return x.r.Next() }
func (x rowSet) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rowSet) Err() error            { return x.r.Err() }
func (x rowSet) Close()                { x.r.Close() }
func (x rowSet) Columns() []string {
	descs := x.r.FieldDescriptions()
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = string(d.Name)
	}
	return names
}

type cmdTag struct{ t pgconn.CommandTag }

func (t cmdTag) String() string      { return t.t.String() }
func (t cmdTag) RowsAffected() int64 { return t.t.RowsAffected() }
