// Package testkit carries the small assertions and seams the platform
// and service tests share
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustPanic runs fn and fails the test unless it panics. The recovered
// value comes back so callers can inspect the message
func MustPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustNotPanic runs fn and fails the test if it panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unwanted panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails the test when haystack lacks needle. Long haystacks
// land in a temp file instead of the failure message
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	if len(haystack) <= 256 {
		t.Fatalf("missing %q in %q", needle, haystack)
	}
	dump := filepath.Join(t.TempDir(), "haystack.txt")
	_ = os.WriteFile(dump, []byte(haystack), 0o600)
	t.Fatalf("missing %q, haystack dumped to %s", needle, dump)
}
