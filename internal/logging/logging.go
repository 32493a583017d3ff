// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects where logs go.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string

	// File, when set, receives the log instead of stderr. The TUI owns the
	// terminal, so interactive runs always log to a file.
	File string

	// Service is attached to every record.
	Service string
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds a text logger from opts, installs it as the slog default
// and returns a closer for the log file. A log file that cannot be opened
// falls back to stderr.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
		err    error
	)
	if opts.File != "" {
		var f *os.File
		f, err = openLogFile(opts.File)
		if err == nil {
			w, closer = f, f
		}
	}

	handler := slog.Handler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(opts.Level)}))
	if opts.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", opts.Service)})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer, err
}

// Discard returns a logger that drops everything. Tests use it to keep
// output quiet.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
