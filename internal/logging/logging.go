// Package logging builds the slog loggers used across the application.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/config"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/encoding"
)

// New creates a text or JSON logger at the configured level writing to w.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler

	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return slog.New(handler), nil
}

// OpenFile opens path for appending with owner-only permissions, creating
// the parent directory when needed.
func OpenFile(path string) (*os.File, error) {
	if err := encoding.EnsureParentDir(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return f, nil
}

// Setup builds the process logger. When toFile is set the logger writes to
// the configured log file so it does not corrupt a full-screen UI; the
// returned closer releases that file.
func Setup(cfg *config.Config, toFile bool) (*slog.Logger, io.Closer, error) {
	if !toFile {
		logger, err := New(cfg.Log, os.Stderr)
		return logger, nopCloser{}, err
	}

	f, err := OpenFile(cfg.LogFile())
	if err != nil {
		return nil, nil, err
	}

	logger, err := New(cfg.Log, f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
