// Package logging provides the package-level *slog.Logger used by pngpdf.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// logger holds the package-level logger instance for debug output. Defaults
// to nil, which causes Logger() to return a discard logger.
var logger atomic.Pointer[slog.Logger]

// discardHandler is a slog.Handler that reports every level as disabled and
// drops all records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newDiscardLogger creates a logger that discards all output.
func newDiscardLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

// SetLogger configures the package-level logger for debug output. Pass nil to
// disable logging again.
//
// SetLogger is safe for concurrent use.
//
// Example enabling debug output to stderr:
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		logger.Store(newDiscardLogger())
	} else {
		logger.Store(sl)
	}
}

// Logger returns the package-level logger. If no logger has been set via
// SetLogger, a discard logger is returned.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = newDiscardLogger()
		logger.Store(l)
	}
	return l
}
