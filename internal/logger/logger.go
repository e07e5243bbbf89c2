// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global logger instance. It writes to stderr until Init
// redirects it; while the TUI owns the terminal, stderr output would corrupt
// the screen, so main points it at a file early in startup.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init redirects logging to the given file, creating it if needed. Returns a
// close function for shutdown. When path is empty, logging is discarded.
func Init(path string) (func(), error) {
	if path == "" {
		Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	Logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return func() { _ = f.Close() }, nil
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
