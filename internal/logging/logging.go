// Package logging provides the structured logger shared by the filesystem
// producers. It wraps log/slog and defaults to discarding everything.
package logging

import (
	"context"
	"log/slog"
	"time"
)

// Logger is a thin structured logger. The zero value and a nil *Logger both
// discard all messages.
type Logger struct {
	logger *slog.Logger
}

// New wraps an existing slog.Logger. A nil argument yields a no-op logger.
func New(l *slog.Logger) *Logger {
	return &Logger{logger: l}
}

func (l *Logger) enabled() bool {
	return l != nil && l.logger != nil
}

// Debug logs debug-level messages.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l.enabled() {
		l.logger.DebugContext(ctx, msg, args...)
	}
}

// Warn logs warning-level messages.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l.enabled() {
		l.logger.WarnContext(ctx, msg, args...)
	}
}

// Error logs error-level messages.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l.enabled() {
		l.logger.ErrorContext(ctx, msg, args...)
	}
}

// With returns a logger that adds args to every message.
func (l *Logger) With(args ...any) *Logger {
	if !l.enabled() {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// WithBackend returns a logger tagged with the producer's backend type.
func (l *Logger) WithBackend(backend string) *Logger {
	return l.With("backend", backend)
}

// Operation names a producer call for logging.
type Operation string

// Producer operations.
const (
	OpStat     Operation = "stat"
	OpList     Operation = "list"
	OpReadlink Operation = "readlink"
)

// LogOperation records the outcome of a producer call. Failures log at warn
// level, successes at debug level.
func LogOperation(ctx context.Context, logger *Logger, op Operation, path string, start time.Time, err error) {
	if !logger.enabled() {
		return
	}

	fields := []any{
		"operation", string(op),
		"path", path,
		"duration_ms", time.Since(start).Milliseconds(),
	}

	if err != nil {
		logger.Warn(ctx, "operation failed", append(fields, "error", err.Error())...)
		return
	}
	logger.Debug(ctx, "operation completed", fields...)
}
