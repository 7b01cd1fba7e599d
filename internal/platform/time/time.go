// Package time carries clock helpers shared by HTTP handlers
package time

import "time"

// Stamp renders t in UTC RFC3339, the wire format for every timestamp we emit
func Stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// NowStamp is Stamp for the current instant
func NowStamp() string { return Stamp(time.Now()) }
