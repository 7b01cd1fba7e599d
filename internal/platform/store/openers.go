package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"numwash/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 6
	defaultPingTimeout    = 5 * time.Second
)

// openPG opens the pool, proves it answers, then wraps it in the sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	retries := cfg.PG.ConnectRetries
	if retries <= 0 {
		retries = defaultConnectRetries
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 150 * time.Millisecond
	exp.Multiplier = 2.0
	exp.MaxInterval = 2 * time.Second
	exp.Reset()

	// ping the bare pool so boot probes never show up in the SQL trace
	type unit struct{}
	ping := func() (unit, error) {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return unit{}, p.Pool.Ping(pingCtx)
	}

	if _, err := backoff.Retry(ctx, ping,
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(uint(retries)),
	); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", retries, err)
	}

	// publish only once the pool is known healthy
	a := newPGRunner(p)
	s.PG = a
	return a, nil
}
