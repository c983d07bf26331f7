package knockout

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Badges are usually rebuilt in a loop, so knockout stays quiet unless a
// caller asks for diagnostics. Records go to one module-wide logger:
//
//   - Debug: the size of every built badge and each rebuild's reason
//   - Info: the config a container was first built with, once per container
//   - Warn: font, stylesheet and watch problems the outer layers recover from
//
// Turn it on with
//
//	knockout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

// nopHandler drops every record. Its Enabled is false, so call sites never
// format their attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	silent  = slog.New(nopHandler{})
	current atomic.Pointer[slog.Logger]
)

// NopLogger returns the logger knockout uses until SetLogger is called.
func NopLogger() *slog.Logger { return silent }

// SetLogger routes the diagnostics of knockout and its dom, measure,
// preview and schedule packages to l. A Renderer built with [WithLogger]
// keeps its own logger. Nil silences knockout again. SetLogger may be called
// while builds are running.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger, or NopLogger.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}
