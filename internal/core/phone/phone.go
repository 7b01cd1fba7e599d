// Package phone provides deterministic phone number normalization and
// canonicalization against a national numbering plan
// Pipeline order for digit extraction
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization folds fullwidth and circled digits to ASCII
// 3 Remove format chars ZWJ ZWNJ FEFF etc
// 4 Keep decimal digits only
package phone

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,                          // fold fullwidth and circled digits
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// Digits returns only the decimal digits of raw, in their original order.
// Every other character is dropped. An input with no digits yields ""
func Digits(raw string) string {
	if raw == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s := strings.ToValidUTF8(raw, "")

	// 2-3 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 4 keep digits only
	var b strings.Builder
	b.Grow(len(ns))
	for _, r := range ns {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasCountryPrefix reports whether raw, after trimming surrounding
// whitespace, begins with a plus sign
func HasCountryPrefix(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "+")
}

// HasWhitespace reports whether any whitespace character occurs
// anywhere in raw
func HasWhitespace(raw string) bool {
	return strings.ContainsFunc(raw, unicode.IsSpace)
}
