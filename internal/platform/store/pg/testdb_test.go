package pg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// withLiveDB opens a client against dsn for one test, tweaks the pool via
// mutate, and closes it on cleanup
func withLiveDB(t *testing.T, dsn string, mutate func(*pgxpool.Config), fn func(p *PG)) {
	t.Helper()

	client, err := Open(context.Background(), Config{URL: dsn}, nil, mutate)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(client.Close)
	fn(client)
}

// pinConn pins one pooled connection so temp tables and session settings
// stay on a single session; released on cleanup
func pinConn(t *testing.T, ctx context.Context, p *PG) *pgxpool.Conn {
	t.Helper()

	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	t.Cleanup(conn.Release)
	return conn
}
