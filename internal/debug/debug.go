// Package debug provides development logging for bindery.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	enabled bool
	logFile *os.File
	mu      sync.Mutex
	logPath string
	logger  = zerolog.Nop()
)

// Enable turns on debug logging to the specified file.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	// Open log file (append mode)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	logFile = f
	logPath = path
	enabled = true
	logger = zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)

	logger.Info().
		Str("started", time.Now().Format(time.RFC3339)).
		Str("log_file", path).
		Msg("debug session started")

	return nil
}

// Disable turns off debug logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = zerolog.Nop()
	enabled = false
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Logger returns the debug logger. It discards everything while debug
// logging is disabled, so callers can hand it to a bus unconditionally.
func Logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a debug message if logging is enabled.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Debug().Msgf(format, args...)
}

// LogPath returns the path to the log file.
func LogPath() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Event logs a component event.
func Event(component, eventType string, details string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Debug().
		Str("component", component).
		Str("event", eventType).
		Msg(details)
}

// Error logs an error with context.
func Error(component string, err error, context string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Error().
		Str("component", component).
		Err(err).
		Msg(context)
}
