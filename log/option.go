package log

// Option adjusts the logger configuration built by [Make] or [Logger.Wrap].
type Option func(config) config

// apply folds opts into cfg in order; later options win.
func apply(cfg config, opts ...Option) config {
	for _, fn := range opts {
		cfg = fn(cfg)
	}

	return cfg
}
