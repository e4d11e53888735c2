// Package logging builds the slog loggers used by the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing records at or above level to w in the
// given format.
func New(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(format) {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Setup returns a logger writing to stderr and, when logFile is set, also
// appending JSONL to logFile. The cleanup function closes the file handle.
func Setup(logFile string, level slog.Level, format string) (*slog.Logger, func(), error) {
	if logFile == "" {
		logger, err := New(os.Stderr, level, format)
		return logger, func() {}, err
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	console, err := New(os.Stderr, level, format)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	logger := slog.New(fanout{console.Handler(), file})

	cleanup := func() {
		_ = f.Close()
	}

	return logger, cleanup, nil
}

// ParseLevel parses "debug", "info", "warn" or "error".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}

	return level, nil
}
