package storage

import "log/slog"

type options struct {
	log *slog.Logger
}

// Option configures a Local store.
type Option func(*options)

// WithLogger sets the logger used for non-fatal storage events.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
