// Package logging builds the process-wide slog logger: console output plus,
// when a log directory is configured, a per-run main log file and an
// error-only log file. Core components receive the logger by injection and
// never reconfigure it.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Options struct {
	// Level applies to the console and main file handlers; the error file
	// always captures error level only.
	Level string
	// Dir receives wst_<ts>.log and wst_error_<ts>.log when non-empty.
	Dir string
	// Console defaults to stderr.
	Console io.Writer
	Now     func() time.Time
}

const fileTimestampLayout = "20060102_150405"

// New constructs the run logger. File handlers stay open for the life of
// the process.
func New(opts Options) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}

		stamp := now().Format(fileTimestampLayout)

		mainFile, err := openLogFile(filepath.Join(opts.Dir, "wst_"+stamp+".log"))
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(mainFile, &slog.HandlerOptions{Level: level}))

		errorFile, err := openLogFile(filepath.Join(opts.Dir, "wst_error_"+stamp+".log"))
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	return slog.New(newFanoutHandler(handlers...)), nil
}

func openLogFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log level: unsupported value %q", level)
	}
}
