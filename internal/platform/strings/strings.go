// Package strings carries small string and slice helpers shared across modules
package strings

import std "strings"

// IfEmpty substitutes def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) > 0 {
		return in
	}
	return def
}

// Contains reports whether sub occurs in s
func Contains(s, sub string) bool { return std.Contains(s, sub) }

// MustString panics when s is blank; name goes into the panic message so the
// caller can tell which value was missing
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path like /cleanup: one leading slash, no
// trailing slash. A bare or empty root panics since modules may not mount there
func MustPrefix(s string) string {
	cleaned := "/" + std.Trim(std.TrimSpace(s), " /")
	if cleaned == "/" {
		panic("root path is required")
	}
	return cleaned
}
