package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Config configures a Resolver.
//
// Client is used when set. Otherwise ClientFactory builds the client on the
// first Load. An empty RootPath selects flat mode, anything else tree mode.
type Config struct {
	Client                   Store
	ClientFactory            StoreFactory
	RootPath                 string
	RaiseOnParameterNotFound bool
	Variables                Variables
	Logger                   *slog.Logger
	Metrics                  *Metrics
}

// Validate checks the configuration without touching the store.
func (c *Config) Validate() error {
	if c.Client == nil && c.ClientFactory == nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNoClient)
	}

	err := c.Variables.Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Resolver maps declared variables to values held by a parameter store.
type Resolver struct {
	config Config
	logger *slog.Logger

	mu     sync.Mutex
	client Store
}

// New validates cfg and returns a Resolver. No request is made until Load.
func New(cfg Config) (*Resolver, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg.Variables = append(Variables(nil), cfg.Variables...)

	return &Resolver{
		config: cfg,
		logger: logger.With(slog.String("component", "params")),
		client: cfg.Client,
	}, nil
}

// Mode reports whether the resolver fetches per variable or lists the root path.
func (r *Resolver) Mode() Mode {
	if r.config.RootPath == "" {
		return ModeFlat
	}

	return ModeTree
}

// RootPath returns the configured root path.
func (r *Resolver) RootPath() string {
	return r.config.RootPath
}

// Variables returns a copy of the declared variables.
func (r *Resolver) Variables() Variables {
	return append(Variables(nil), r.config.Variables...)
}

// Load fetches the parameters once and returns them as a Snapshot.
// Store failures are returned as *Error.
func (r *Resolver) Load(ctx context.Context) (*Snapshot, error) {
	client, err := r.storeClient(ctx)
	if err != nil {
		return nil, err
	}

	f := &fetcher{
		store:    client,
		rootPath: r.config.RootPath,
		raise:    r.config.RaiseOnParameterNotFound,
		logger:   r.logger,
		metrics:  r.config.Metrics,
	}

	r.logger.Debug("fetching parameters",
		slog.String("mode", string(f.mode())),
		slog.Int("variables", len(r.config.Variables)))

	params, err := f.fetch(ctx, r.config.Variables)
	if err != nil {
		return nil, err
	}

	r.config.Metrics.snapshot(len(params))
	r.logger.Info("parameters fetched",
		slog.String("mode", string(f.mode())),
		slog.Int("parameters", len(params)))

	return newSnapshot(r.config.RootPath, r.config.Variables, params, r.logger, r.config.Metrics), nil
}

// Resolve loads a snapshot and runs it into sink.
func (r *Resolver) Resolve(ctx context.Context, sink Sink) error {
	snapshot, err := r.Load(ctx)
	if err != nil {
		return err
	}

	snapshot.Run(sink)

	return nil
}

func (r *Resolver) storeClient(ctx context.Context) (Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	client, err := r.config.ClientFactory(ctx)
	if err != nil {
		return nil, classify("new_client", r.config.RootPath, err)
	}

	if client == nil {
		return nil, classify("new_client", r.config.RootPath,
			NewStoreError(ErrNoClient, "NoClient", "client factory returned no client"))
	}

	r.client = client

	return client, nil
}
