package opts

import "github.com/ardnew/pirate/log"

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}
