// Package listener serves the resolver's Prometheus metrics over HTTP as an Fx module.
package listener

import (
	"errors"
	"strings"
	"time"
)

const (
	// DefaultAddress is where the metrics listener binds when no address is configured.
	DefaultAddress = ":9464"
	// DefaultMetricsPath is the route the metrics are exposed on.
	DefaultMetricsPath = "/metrics"
	// DefaultReadHeaderTimeout bounds how long a client may take to send request headers.
	DefaultReadHeaderTimeout = 10 * time.Second
)

var (
	// ErrEmptyAddress is returned when the address is empty.
	ErrEmptyAddress = errors.New("address must not be empty")
	// ErrInvalidMetricsPath is returned when the metrics path does not start with a slash.
	ErrInvalidMetricsPath = errors.New("metrics path must start with /")
	// ErrListenFailed is returned when the server fails to listen on the configured address.
	ErrListenFailed = errors.New("failed to listen")
	// ErrShutdownFailed is returned when the server fails to shut down gracefully.
	ErrShutdownFailed = errors.New("shutdown failed")
	// ErrEmptyName is returned when the listener name is empty.
	ErrEmptyName = errors.New("listener name must not be empty")
	// ErrNilHandler is returned when a nil http.Handler is provided.
	ErrNilHandler = errors.New("handler must not be nil")
)

// Config holds the configuration for a metrics listener. It is read from the
// "listener" section of a configuration file by config.Provider.
type Config struct {
	Address           string        `yaml:"address"`
	MetricsPath       string        `yaml:"metrics_path"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

// SetDefaults fills empty fields and reports whether anything changed.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.MetricsPath == "" {
		c.MetricsPath = DefaultMetricsPath
		changed = true
	}

	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if !strings.HasPrefix(c.MetricsPath, "/") {
		return ErrInvalidMetricsPath
	}

	return nil
}
