package glref

import "log/slog"

// Option configures a ReferenceContext during creation.
//
// Example:
//
//	ctx, err := glref.NewReferenceContext(glref.DefaultConfig(),
//	    glref.WithSurface(glref.SurfaceConfig{Width: 64, Height: 64, RedBits: 8,
//	        GreenBits: 8, BlueBits: 8, AlphaBits: 8}))
type Option func(*contextOptions)

// contextOptions holds the configuration applied on top of the Config
// passed to NewReferenceContext.
type contextOptions struct {
	cfg    Config
	logger *slog.Logger
}

// WithLimits replaces the implementation limits.
func WithLimits(l Limits) Option {
	return func(o *contextOptions) {
		o.cfg.Limits = l
	}
}

// WithSurface replaces the default framebuffer description.
func WithSurface(s SurfaceConfig) Option {
	return func(o *contextOptions) {
		o.cfg.Surface = s
	}
}

// WithLogger sets a logger for one context instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *contextOptions) {
		o.logger = l
	}
}
