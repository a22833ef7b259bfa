// Package logging builds the charm loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kubb-counter/internal/config"
)

// New creates a logger writing to w with timestamps and the given prefix.
// An unknown level falls back to info.
func New(w io.Writer, prefix, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// OpenFile opens path for appending, creating parent directories.
// The caller closes the file.
func OpenFile(path string) (*os.File, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log directory: %w", err)
	}
	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", expanded, err)
	}
	return f, nil
}

// Level returns "debug" when debug is set and configured otherwise.
func Level(configured string, debug bool) string {
	if debug {
		return "debug"
	}
	return configured
}
