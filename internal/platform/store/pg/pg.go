// Package pg owns the pgxpool handle plus the statement tracing hooks
// layered on top of it
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config carries what Open needs to stand a pool up
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// PG couples the pool with the tracer every adapter statement reports to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// newPool is a seam so tests can stand in for pgxpool
var newPool = pgxpool.NewWithConfig

// Open parses the URL, applies the caller's pool tweaks, and dials.
// mutate runs after the parsed defaults so callers can override any of them
func Open(ctx context.Context, cfg Config, tracer QueryTracer, mutate func(*pgxpool.Config)) (*PG, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if mutate != nil {
		mutate(poolCfg)
	}

	pool, err := newPool(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close releases the pool; safe on nil
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
