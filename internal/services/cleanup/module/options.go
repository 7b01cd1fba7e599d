package module

import "numwash/internal/platform/config"

// Options holds configuration settings for the cleanup module
type Options struct {
	Workers int
	Events  int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("NUMWASH_CLEANUP_")
	return Options{
		Workers: cf.MayInt("WORKERS", 4),
		Events:  cf.MayInt("EVENTS", 8),
	}
}
