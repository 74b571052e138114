// Package logx is the leveled diagnostic logger used throughout
// stratum. Aggregator and processor warnings, and the CLI's
// --debug/--trace output, all flow through here rather than panicking
// or printing ad hoc.
package logx

import (
	"fmt"
	"os"
	"sync"

	"github.com/gobbles/stratum/internal/utils/ansi"
)

// Level selects which diagnostic messages are emitted.
type Level int

const (
	LevelWarn Level = iota
	LevelDebug
	LevelTrace
)

var (
	mu   sync.Mutex
	lvl  = LevelWarn
	dest = os.Stderr
)

// SetLevel adjusts the global verbosity. The CLI calls this once,
// during flag parsing.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	lvl = l
}

// DebugOn reports whether Debugf/Tracef currently emit anything.
func DebugOn() bool {
	mu.Lock()
	defer mu.Unlock()
	return lvl >= LevelDebug
}

// TraceOn reports whether Tracef currently emits anything.
func TraceOn() bool {
	mu.Lock()
	defer mu.Unlock()
	return lvl >= LevelTrace
}

func printfStdErr(format string, args ...interface{}) {
	fmt.Fprintln(dest, ansi.Sprintf(format, args...))
}

// Warnf reports a non-fatal condition: a skipped descendant node, a
// malformed sidecar that the caller chose to continue past, and
// similar. Always emitted.
func Warnf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	printfStdErr("@Y{WARN:} "+format, args...)
}

// Debugf is emitted only when the level is Debug or above.
func Debugf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if lvl < LevelDebug {
		return
	}
	printfStdErr("@c{DEBUG:} "+format, args...)
}

// Tracef is emitted only when the level is Trace.
func Tracef(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if lvl < LevelTrace {
		return
	}
	printfStdErr("@m{TRACE:} "+format, args...)
}
