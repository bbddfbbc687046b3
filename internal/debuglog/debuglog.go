// ABOUTME: File-backed debug logger for the livraria CLI
// ABOUTME: Keeps diagnostics out of the terminal so the TUI stays clean

package debuglog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu      sync.Mutex
	file    *os.File
	logger  *log.Logger
	enabled bool
)

// Init opens the debug log under configDir. With an empty configDir logging
// is disabled and all calls become no-ops.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		enabled = false
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		enabled = false
		return err
	}

	file = f
	logger = log.New(f, "", log.LstdFlags)
	enabled = true
	return nil
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
		logger = nil
	}
	enabled = false
}

// Log writes a formatted message to the debug log.
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logger == nil {
		return
	}
	logger.Output(2, fmt.Sprintf(format, args...))
}

// Error logs an error with context. Nil errors are ignored.
func Error(context string, err error) {
	if err == nil {
		return
	}
	Log("ERROR [%s]: %v", context, err)
}
