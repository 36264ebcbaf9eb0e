package esutil

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so callers never
// build the attributes of a disabled record.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr is swapped by SetLogger while backends may be logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes esutil diagnostics to l. A nil l silences them again,
// which is also the state before the first call.
//
// Shader builds and backends share this logger unless a WithLogger option
// overrides it for one build or one backend context. What goes where:
//   - debug: each shader or program object as it is created and deleted
//   - info: a program that linked
//   - warn: a program released twice, or objects still alive when a
//     backend context is closed
//   - error: the compile or link info log of a failed build
//
// The command line tools install a text handler:
//
//	esutil.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger installed by SetLogger, or a silent one.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
