package shader

import "log/slog"

// Option configures a Build call.
//
// Example:
//
//	prog, err := shader.Build(ctx, vs, fs,
//	    shader.WithLabel("particle"),
//	    shader.WithLogger(logger),
//	)
type Option func(*options)

// options holds optional configuration for Build.
type options struct {
	logger *slog.Logger
	label  string
}

// WithLogger routes this build's diagnostics to l instead of the
// package-wide logger configured with esutil.SetLogger.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLabel attaches a human readable label to every log record emitted by
// the build, which helps telling demos apart in shared logs.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}
