// Package logger provides verbose logging for folio.
// When verbose mode is enabled via the --verbose flag, messages are printed
// to stderr to show how a document moved through the import pipeline: which
// boundary pattern matched, which spans were skipped and how slugs were
// chosen. With verbose mode off every call is a no-op.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level tags a verbose log line.
type Level string

// Log levels, printed as a bracketed prefix.
const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects verbose output. Passing nil restores os.Stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	output = w
	mu.Unlock()
}

// Logf writes one line at the given level when verbose mode is on.
func Logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

// Debug logs at LevelDebug.
func Debug(format string, args ...any) { Logf(LevelDebug, format, args...) }

// Info logs at LevelInfo.
func Info(format string, args ...any) { Logf(LevelInfo, format, args...) }

// Warn logs at LevelWarn.
func Warn(format string, args ...any) { Logf(LevelWarn, format, args...) }

// Section prints a stage header such as "=== Import ===".
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs the start of a named stage and returns a function that logs
// its duration. Typical use is defer logger.Timed("fetch")().
func Timed(name string) func() {
	if !IsVerbose() {
		return func() {}
	}
	start := time.Now()
	Debug("%s: started", name)
	return func() {
		Debug("%s: finished in %s", name, time.Since(start).Round(time.Millisecond))
	}
}
