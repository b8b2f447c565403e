// Package logging defines a minimal structured-logging interface used across
// the client. Implementations wrap slog or zerolog.
package logging

import (
	"context"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request done", "method", "GET", "status", 200)
type Logger interface {
	// Debug logs diagnostic detail such as individual requests.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported output formats.
const (
	FormatText    = "text"
	FormatConsole = "console"
)

// New builds a Logger writing to w. "console" selects the zerolog console
// writer; anything else falls back to the slog text handler.
func New(format, level string, w io.Writer) Logger {
	if strings.EqualFold(format, FormatConsole) {
		return NewZerologConsole(w, level)
	}
	return NewSlogText(w, level)
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogText(io.Discard, "error")
}
