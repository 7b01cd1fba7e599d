package pg

import (
	"context"
	"strings"

	"numwash/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one executed statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
	RequestID string
}

// QueryTracer receives an event per statement when SQL logging is on
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer builds a tracer that logs every statement regardless of the
// process-wide level; turning LogSQL on means you want to see the SQL
func Tracer(root logger.Logger) QueryTracer {
	sqlLog := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &logTracer{log: sqlLog}
}

type logTracer struct{ log logger.Logger }

func (lt *logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	line := lt.log.Info()
	if ev.Slow {
		line = lt.log.Warn()
	}
	if ev.RequestID != "" {
		line = line.Str("request_id", ev.RequestID)
	}

	line.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", oneline(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// oneline flattens multi-line SQL into single-spaced text for the log
func oneline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
