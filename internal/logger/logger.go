// Package logger provides a simple wrapper around slog for structured logging.
//
// The default logger writes to stderr, which is fine for tests and flag
// handling. Once the TUI takes over the terminal, call InitFile to redirect
// output to a log file so records do not corrupt the screen.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global logger instance.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var logFile *os.File

// InitFile redirects the global logger to a file at path, creating parent
// directories as needed. Returns a cleanup function that closes the file.
func InitFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	logFile = f
	Logger = slog.New(slog.NewTextHandler(f, nil))
	return func() {
		Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		_ = f.Close()
	}, nil
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
