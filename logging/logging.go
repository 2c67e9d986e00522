// Package logging holds the logger shared by every canvas package.
//
// By default nothing is logged. The host application calls SetLogger to
// route records somewhere useful.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger replaces the shared logger. Passing nil restores the silent
// default.
//
// Levels in use:
//   - Debug: tool dispatch, font substitution, layout reflow
//   - Info: tool activation, document save/load
//   - Warn: font load failures, autosave failures
//   - Error: recovered tool handler panics
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the shared logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// For returns the shared logger tagged with a component name.
func For(component string) *slog.Logger {
	return Logger().With(slog.String("component", component))
}
