// Package config reads application configuration from environment variables
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"numwash/internal/platform/logger"
)

// Conf is a prefixed view over the environment (e.g. "NUMWASH_API_").
// New() gives the root view; Prefix derives module scopes from it.
type Conf struct{ prefix string }

// New creates a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix derives a child Conf, e.g. cfg.Prefix("PGSQL_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// get reads and trims the raw value for key
func (c Conf) get(key string) string { return strings.TrimSpace(os.Getenv(c.key(key))) }

// missing aborts startup for a key that has to be present
func (c Conf) missing(key string) {
	logger.Get().Panic().Str("key", c.key(key)).Msg("required env var not set")
}

// reject aborts startup for a key whose value cannot be used
func (c Conf) reject(key, value, problem string) {
	logger.Get().Panic().Str("key", c.key(key)).Str("value", value).Msg(problem)
}

// fallback logs the unparseable value and keeps the default
func (c Conf) fallback(key, value string, def any) {
	logger.Get().Warn().Str("key", c.key(key)).Str("value", value).
		Interface("default", def).Msg("unparseable value, using default")
}

// Must variants panic on missing or malformed values; use them for
// settings the process cannot start without.

// MustString panics when key is missing or empty
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		c.missing(key)
	}
	return v
}

// MustInt panics when key is missing, empty, or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		c.reject(key, s, "value is not an int")
	}
	return v
}

// MustBool panics when key is missing, empty, or not a bool
func (c Conf) MustBool(key string) bool {
	s := c.MustString(key)
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.reject(key, s, "value is not a bool")
	}
	return v
}

// MustDuration panics when key is missing, empty, or not a duration
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		c.reject(key, s, "value is not a duration like 250ms or 2s")
	}
	return d
}

// MustURL panics when key is missing, empty, or not an absolute URL
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		c.reject(key, s, "value is not an absolute URL")
	}
	return u
}

// MustPort validates 1..65535 and returns a net/http addr like ":4000"
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	if p, err := strconv.Atoi(s); err != nil || p < 1 || p > 65535 {
		c.reject(key, s, "value is not a TCP port in 1..65535")
	}
	return ":" + s
}

// Require panics unless every listed key is present and non-empty
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.get(k) == "" {
			c.missing(k)
		}
	}
}

// May variants return def when the key is absent; malformed values log
// a warning and fall back rather than kill the process.

// MayString returns the value or def when missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the int value or def
func (c Conf) MayInt(key string, def int) int {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.fallback(key, s, def)
		return def
	}
	return v
}

// MayFloat64 returns the float value or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.fallback(key, s, def)
		return def
	}
	return v
}

// MayBool returns the bool value or def
func (c Conf) MayBool(key string, def bool) bool {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.fallback(key, s, def)
		return def
	}
	return v
}

// MayDuration returns the duration value or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.get(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		c.fallback(key, s, def)
		return def
	}
	return d
}

// MayCSV splits a comma separated value into trimmed parts, def when empty
func (c Conf) MayCSV(key string, def []string) []string {
	raw := c.get(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed (case folded),
// def when empty, and panics on anything else
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("value outside the allowed set")
	return "" // unreachable
}
