package params

import (
	"github.com/0xalexb/hjarta-params/listener"
	"github.com/0xalexb/hjarta-params/resolver"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (the default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithStore supplies the parameter store used by resolutions that do not bring their own client.
func WithStore(store resolver.Store) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, fx.Supply(
			fx.Annotate(store, fx.As(new(resolver.Store))),
		))
	}
}

// WithResolution adds the params module resolving cfg when the application starts.
// An application holds at most one resolution.
func WithResolution(cfg resolver.Config) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, Module(cfg))
	}
}

// WithSink supplies the sink resolved values are written to, in addition to the
// *resolver.MapSink the params module always provides.
func WithSink(sink resolver.Sink) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, fx.Supply(
			fx.Annotate(sink, fx.As(new(resolver.Sink))),
		))
	}
}

// WithMetrics registers the resolver metrics with reg. See MetricsModule.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, MetricsModule(reg))
	}
}

// WithHTTPListener serves the metrics over HTTP while the application runs.
// See ListenerModule.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, ListenerModule(name, opts...))
	}
}
