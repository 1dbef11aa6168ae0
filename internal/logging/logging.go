// Package logging sets up the structured logger shared by the viewer
// core: human-readable warnings on the console, full debug detail in a
// rotating JSON file.
package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much the core logs.
type Options struct {
	// FilePath is the log file location. Empty disables file logging.
	FilePath string

	// MaxSizeMB is the rotation threshold for the log file.
	MaxSizeMB int

	// MaxBackups is how many rotated files to keep.
	MaxBackups int

	// Verbose lowers the console threshold from Warn to Debug.
	Verbose bool
}

// splitHandler sends records to the console and the file handler, each
// with its own level threshold.
type splitHandler struct {
	console slog.Handler
	file    slog.Handler
}

func (h *splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.console.Enabled(ctx, level) {
		return true
	}
	return h.file != nil && h.file.Enabled(ctx, level)
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.file != nil && h.file.Enabled(ctx, r.Level) {
		if err := h.file.Handle(ctx, r); err != nil {
			return err
		}
	}
	if h.console.Enabled(ctx, r.Level) {
		return h.console.Handle(ctx, r)
	}
	return nil
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := &splitHandler{console: h.console.WithAttrs(attrs)}
	if h.file != nil {
		out.file = h.file.WithAttrs(attrs)
	}
	return out
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	out := &splitHandler{console: h.console.WithGroup(name)}
	if h.file != nil {
		out.file = h.file.WithGroup(name)
	}
	return out
}

// New builds the logger. The returned cleanup function closes the log
// file and is safe to call even when file logging is disabled.
func New(opts Options) (*slog.Logger, func(), error) {
	consoleLevel := slog.LevelWarn
	if opts.Verbose {
		consoleLevel = slog.LevelDebug
	}

	handler := &splitHandler{
		console: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: consoleLevel}),
	}

	cleanup := func() {}
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, nil, err
		}

		// lumberjack handles rotation
		lj := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			LocalTime:  true,
		}
		handler.file = slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: slog.LevelDebug})
		cleanup = func() {
			if err := lj.Close(); err != nil {
				slog.Error("Failed to close log file", "error", err)
			}
		}
	}

	return slog.New(handler), cleanup, nil
}
