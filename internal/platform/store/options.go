package store

import (
	"numwash/internal/platform/logger"
)

// Option adjusts a Store while Open assembles it
type Option func(*Store) error

// WithLogger hands the store the logger its seams log through, the SQL
// tracer included
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
