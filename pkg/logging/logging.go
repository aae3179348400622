// Package logging builds the charmbracelet/log loggers used across
// nomofobia. The TUI owns the terminal, so interactive runs log to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Discard is the log_file value that disables logging.
const Discard = "-"

// New returns a logger writing to w at the named level. Unknown levels fall
// back to info.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           ParseLevel(level),
	})
}

// ParseLevel maps debug/info/warn/error to a log level.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// DefaultLogPath returns $XDG_STATE_HOME/nomofobia/nomofobia.log, falling
// back to ~/.local/state.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "nomofobia.log")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "nomofobia", "nomofobia.log")
}

// Open returns a logger appending to path and the closer for the file. An
// empty path selects DefaultLogPath; Discard returns a silent logger.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	if path == Discard {
		return New(io.Discard, level), io.NopCloser(nil), nil
	}
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, level)
	l.SetFormatter(log.LogfmtFormatter)
	return l, f, nil
}

// OpenCommand is Open for non-interactive subcommands: with no log file
// configured they log to stderr instead of DefaultLogPath.
func OpenCommand(stderr io.Writer, path, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return New(stderr, level), io.NopCloser(nil), nil
	}
	return Open(path, level)
}
