package store

import "time"

// Config collects per-backend settings
type Config struct {
	PG PGConfig
}

// PGConfig holds postgres connectivity and tracing knobs
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot-time guardrails
	ConnectRetries int           // zero means 6 tries under exponential backoff
	PingTimeout    time.Duration // zero means 5s per ping
}
