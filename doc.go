// Package params wires parameter resolution into an Fx application.
//
// NewApp configures slog and Fx the same way for every service; WithStore and
// WithResolution add a module that resolves the declared variables when the
// application starts and exposes them as a *resolver.MapSink. WithMetrics and
// WithHTTPListener publish the resolver metrics on a Prometheus scrape endpoint.
package params
