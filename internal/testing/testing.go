// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// Recorder collects callback invocations in order, for asserting scheduler and observer ordering.
type Recorder struct {
	Calls []string
}

// Mark returns a callback that appends label when invoked.
func (r *Recorder) Mark(label string) func() {
	return func() { r.Calls = append(r.Calls, label) }
}

// Equal reports whether the recorded calls match want exactly.
func (r *Recorder) Equal(want ...string) bool {
	if len(r.Calls) != len(want) {
		return false
	}
	for i := range want {
		if r.Calls[i] != want[i] {
			return false
		}
	}
	return true
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
