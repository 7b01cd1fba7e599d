// Package testkit holds assertion helpers shared by tests across the tree
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("call completed without panicking")
		}
	}()
	fn()
}

// MustNotPanic fails the test when fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panicked with %v", r)
		}
	}()
	fn()
}

// MustContain fails unless s contains sub. Inputs tend to be whole log
// buffers, so on failure the full text lands in a temp file instead of
// drowning the test output
func MustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		dump := filepath.Join(t.TempDir(), "output.txt")
		_ = os.WriteFile(dump, []byte(s), 0o600)
		t.Fatalf("expected output to contain %q\n\nfull text written to %s", sub, dump)
	}
}
