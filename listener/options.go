package listener

import "time"

// Option defines a function type for configuring a metrics listener.
type Option func(*Config)

// WithAddress sets the address the listener binds to.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithMetricsPath sets the route the metrics are served on.
func WithMetricsPath(path string) Option {
	return func(cfg *Config) {
		cfg.MetricsPath = path
	}
}

// WithReadHeaderTimeout sets how long a client may take to send request headers.
func WithReadHeaderTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.ReadHeaderTimeout = timeout
	}
}

// NewConfig applies opts over an empty Config and fills the remaining defaults.
func NewConfig(opts ...Option) Config {
	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	cfg.SetDefaults()

	return cfg
}
