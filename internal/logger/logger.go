// Package logger provides verbose logging for pvs.
// When verbose mode is enabled via the --verbose flag, messages are
// printed to stderr to trace file loading, pipeline setup and the
// steering worker. Background failures are warnings here too, so nothing
// reaches the terminal while the viewer owns it unless verbose mode is on
// and the viewer has redirected the output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Output returns the current output writer.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

// logf writes under the exclusive lock.
func logf(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { logf("[DEBUG] ", format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { logf("[INFO] ", format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) { logf("[WARN] ", format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) { logf("\n=== ", "%s ===", name) }

// Elapsed prints how long has passed since start, rounded to the
// microsecond.
func Elapsed(what string, start time.Time) {
	logf("[DEBUG] ", "%s took %s", what, time.Since(start).Round(time.Microsecond))
}
