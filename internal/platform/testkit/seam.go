package testkit

import (
	"sync"
	"testing"
)

// serialGate serializes tests that rewire package seams
var serialGate sync.Mutex

// Swap points target at replacement until the test finishes, then puts
// the original back. Pair with Serial when the seam is shared
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	saved := *target
	*target = replacement
	t.Cleanup(func() { *target = saved })
}

// Serial holds a process-wide lock for the duration of the test
func Serial(t *testing.T) {
	t.Helper()
	serialGate.Lock()
	t.Cleanup(serialGate.Unlock)
}
