// Package raw is the tiny env reader the logger bootstraps from.
// It must not import the logger, so it reports nothing on bad values
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over environment variables
type Conf struct{ prefix string }

// New returns a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix derives a child Conf, e.g. Prefix("LOG_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// Get returns the trimmed value, or def when missing/empty
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.key(key))); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes as true; anything else present is false
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.Get(key, "")) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	}
	return false
}

// GetInt parses a plain non-negative integer; anything else yields def
func (c Conf) GetInt(key string, def int) int {
	s := c.Get(key, "")
	if s == "" || strings.Trim(s, "0123456789") != "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
