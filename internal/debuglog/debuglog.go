// ABOUTME: File-backed diagnostics for the webcost client
// ABOUTME: The TUI owns the terminal, so request traces and errors go to debug.log

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	sink *os.File
)

// Init opens debug.log under the config directory. With an empty configDir
// logging stays off and every call is a no-op.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	sink = f
	return nil
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		sink.Close()
		sink = nil
	}
}

// Log writes one timestamped line.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if sink == nil {
		return
	}

	fmt.Fprintf(sink, "[%s] %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(format, args...))
}

// Request traces one backend round trip. The request ID matches the
// X-Request-ID header sent to the backend, so client and server logs can be
// correlated.
func Request(method, path string, status int, requestID string) {
	Log("%s %s -> %d [%s]", method, path, status, requestID)
}

// Error logs an error with context.
func Error(context string, err error) {
	if err == nil {
		return
	}
	Log("ERROR [%s]: %v", context, err)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	Log("WARN: "+format, args...)
}
