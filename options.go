package slabcache

import (
	"context"
	"log/slog"

	"github.com/djdv/go-slabcache/metrics"
)

type (
	// Logger receives structured events from a [Cache]:
	// evictions at debug level, and allocation failures as errors.
	// [*slog.Logger] satisfies it.
	Logger interface {
		Enabled(ctx context.Context, level slog.Level) bool
		Debug(msg string, args ...any)
		Error(msg string, args ...any)
	}
	// Option configures a [Cache] during [New].
	Option   func(*settings)
	settings struct {
		logger  Logger
		metrics metrics.Interface
	}
)

// WithLogger sets the logger for evictions and allocation failures.
// By default, events are discarded.
func WithLogger(logger Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
// By default, [metrics.Noop] is used.
func WithMetrics(sink metrics.Interface) Option {
	return func(s *settings) { s.metrics = sink }
}

func newSettings(options []Option) settings {
	s := settings{
		logger:  slog.New(slog.DiscardHandler),
		metrics: metrics.Noop{},
	}
	for _, apply := range options {
		apply(&s)
	}
	return s
}
