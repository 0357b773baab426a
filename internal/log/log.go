// Package log provides structured logging for cardglyph.
// It wraps slog; records go to stderr so stdout stays free for results.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
)

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
// Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Init (re)configures the global logger with the given level.
func Init(level string) {
	InitWriter(os.Stderr, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	logger = slog.New(slog.NewTextHandler(w, opts))
}

// L returns the global logger instance.
func L() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		Init("info")
		return L()
	}
	return l
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}
