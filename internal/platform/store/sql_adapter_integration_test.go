//go:build integration_pg
// +build integration_pg

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// livePostgres boots a throwaway postgres and hands back its DSN.
// Teardown rides on t.Cleanup.
func livePostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "wash",
				"POSTGRES_PASSWORD": "wash",
				"POSTGRES_DB":       "contacts",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("postgres://wash:wash@%s:%s/contacts?sslmode=disable", host, port.Port())
}

// liveRunner opens the adapter against dsn with every statement traced
// into sink.
func liveRunner(t *testing.T, dsn string, sink *bytes.Buffer) *pgRunner {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)

	s := &Store{Log: zerolog.New(sink)}
	txr, err := openPG(ctx, Config{PG: PGConfig{
		URL:      dsn,
		MaxConns: 2,
		LogSQL:   true,
	}}, s)
	if err != nil {
		t.Fatalf("openPG: %v", err)
	}
	r, ok := txr.(*pgRunner)
	if !ok {
		t.Fatalf("openPG handed back %T, want *pgRunner", txr)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestPGRunner_LiveStatements(t *testing.T) {
	dsn := livePostgres(t)

	var sink bytes.Buffer
	r := liveRunner(t, dsn, &sink)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := r.Exec(ctx, `
		CREATE TEMP TABLE phones_live (
			id  SERIAL PRIMARY KEY,
			raw TEXT NOT NULL
		)
	`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := r.Exec(ctx, `INSERT INTO phones_live (raw) VALUES ($1), ($2)`,
		"912 345 678", "+351212345678"); err != nil {
		t.Fatalf("seed rows: %v", err)
	}

	// single row, tagged so the trace can be matched back
	tagged := WithRequestID(ctx, "it-req-1")
	var first string
	if err := r.QueryRow(tagged, `SELECT raw FROM phones_live WHERE id = $1`, 1).Scan(&first); err != nil {
		t.Fatalf("queryrow: %v", err)
	}
	if first != "912 345 678" {
		t.Fatalf("first raw = %q", first)
	}

	// result set surface
	rs, err := r.Query(ctx, `SELECT id, raw FROM phones_live ORDER BY id`)
	if err != nil {
		t.Fatalf("open query: %v", err)
	}
	defer rs.Close()

	if cols := rs.Columns(); len(cols) != 2 || cols[0] != "id" || cols[1] != "raw" {
		t.Fatalf("columns = %#v", cols)
	}
	var raws []string
	for rs.Next() {
		var id int
		var raw string
		if err := rs.Scan(&id, &raw); err != nil {
			t.Fatalf("scan: %v", err)
		}
		raws = append(raws, raw)
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("iterate: %v", err)
	}
	if len(raws) != 2 || raws[1] != "+351212345678" {
		t.Fatalf("raws = %v", raws)
	}

	// every statement above must have hit the trace, and the tagged one
	// must carry its request id
	trace := sink.String()
	if !strings.Contains(trace, "phones_live") {
		t.Fatalf("trace missing statements: %s", trace)
	}
	if !strings.Contains(trace, `"request_id":"it-req-1"`) {
		t.Fatalf("trace missing request id: %s", trace)
	}
}

func TestPGRunner_LiveTxCommitAndRollback(t *testing.T) {
	dsn := livePostgres(t)

	var sink bytes.Buffer
	r := liveRunner(t, dsn, &sink)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := r.Exec(ctx, `
		CREATE TEMP TABLE edits_live (
			id         SERIAL PRIMARY KEY,
			contact_id TEXT NOT NULL
		)
	`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	// committed work is visible afterwards
	if err := RunInTx(ctx, r, func(ctx context.Context, q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO edits_live (contact_id) VALUES ('c10')`)
		return err
	}); err != nil {
		t.Fatalf("commit tx: %v", err)
	}
	n, err := Scalar[int](ctx, r, `SELECT COUNT(*) FROM edits_live WHERE contact_id = 'c10'`)
	if err != nil {
		t.Fatalf("committed count: %v", err)
	}
	if n != 1 {
		t.Fatalf("committed count = %d, want 1", n)
	}

	// a returned error rolls the whole body back
	refuse := errors.New("refuse to keep the row")
	if err := RunInTx(ctx, r, func(ctx context.Context, q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO edits_live (contact_id) VALUES ('c20')`); err != nil {
			return err
		}
		return refuse
	}); !errors.Is(err, refuse) {
		t.Fatalf("rollback tx err = %v, want %v", err, refuse)
	}
	n, err = Scalar[int](ctx, r, `SELECT COUNT(*) FROM edits_live WHERE contact_id = 'c20'`)
	if err != nil {
		t.Fatalf("rolled-back count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rolled back count = %d, want 0", n)
	}

	// ping still answers and double close stays quiet
	if err := r.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
