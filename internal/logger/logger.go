// Package logger routes structured logs to a session file.
//
// The terminal belongs to the Bubble Tea program, so nothing is written to
// stdout or stderr once Init has succeeded. Before Init (and in tests) every
// logger discards its output.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var (
	mu        sync.Mutex
	base      *slog.Logger
	levelVar  = new(slog.LevelVar)
	logFile   *os.File
	logPath   string
	sessionID string
)

// Init opens path for appending and installs a text handler tagged with a
// fresh session id. Calling Init again replaces the previous file.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logPath = path
	sessionID = uuid.NewString()

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar})
	base = slog.New(handler).With(slog.String("session", sessionID))
	base.Info("logger initialized", "path", path)
	return nil
}

// SetDebug toggles debug level output.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
		return
	}
	levelVar.Set(slog.LevelInfo)
}

// Get returns the session logger, or a discarding logger before Init.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		return slog.New(slog.DiscardHandler)
	}
	return base
}

// Component returns the session logger with a component attribute attached.
//
//	log := logger.Component("grid")
//	log.Debug("window", "first", first, "last", last)
func Component(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// Path returns the active log file path ("" before Init).
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// SessionID returns the id stamped on every record of this session.
func SessionID() string {
	mu.Lock()
	defer mu.Unlock()
	return sessionID
}

// Close flushes and closes the log file. Later logging is discarded.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	base = nil
}

// Reset returns the package to its pre-Init state. Used by tests.
func Reset() {
	Close()
	mu.Lock()
	defer mu.Unlock()
	logPath = ""
	sessionID = ""
	levelVar.Set(slog.LevelInfo)
}
