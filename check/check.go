// Package check implements fail-fast assertions for programmer contract
// violations. A failed check logs the caller's file:line at fatal level and
// terminates the process; it is never a recoverable error path.
package check

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// exit is swapped out by tests so failures can be observed without killing
// the test binary.
var exit = os.Exit

// True fails unless cond holds.
func True(cond bool, msg string) {
	if !cond {
		fail(msg)
	}
}

// Equal fails unless a == b.
func Equal[T comparable](a, b T) {
	if a != b {
		fail(fmt.Sprintf("check failed: %v == %v", a, b))
	}
}

// Greater fails unless a > b.
func Greater[T cmp.Ordered](a, b T) {
	if !(a > b) {
		fail(fmt.Sprintf("check failed: %v > %v", a, b))
	}
}

// Fatalf fails unconditionally with a formatted message.
func Fatalf(format string, args ...any) {
	fail(fmt.Sprintf(format, args...))
}

// fail is always called directly by an exported check, so the site that
// broke the contract sits two frames up.
func fail(msg string) {
	loc := "???:0"
	if _, file, line, ok := runtime.Caller(2); ok {
		loc = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	// The configured level never suppresses a fatal report.
	l := log.Logger.Level(zerolog.TraceLevel)
	l.WithLevel(zerolog.FatalLevel).Msgf("%s: %s", loc, msg)
	exit(1)
}
