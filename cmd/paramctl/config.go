package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-params/config"
	filefetcher "github.com/0xalexb/hjarta-params/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-params/config/parser/yaml"
	"github.com/0xalexb/hjarta-params/resolver"
	"github.com/0xalexb/hjarta-params/store/file"
	"github.com/0xalexb/hjarta-params/store/natskv"
	"github.com/0xalexb/hjarta-params/store/ssm"
)

// Store kinds accepted by --store and the store section.
const (
	kindSSM  = "ssm"
	kindNATS = "nats"
	kindFile = "file"
)

var (
	errUnknownStore   = errors.New("unknown store kind")
	errMissingBucket  = errors.New("nats store requires a bucket")
	errMissingFile    = errors.New("file store requires a parameters file")
	errNegativeLimits = errors.New("max_results, rate_limit and rate_burst must not be negative")
)

// storeConfig is the store section of a variables file.
type storeConfig struct {
	Kind       string  `yaml:"kind"`
	Region     string  `yaml:"region"`
	MaxResults int32   `yaml:"max_results"`
	RateLimit  float64 `yaml:"rate_limit"`
	RateBurst  int     `yaml:"rate_burst"`
	NATSURL    string  `yaml:"nats_url"`
	Bucket     string  `yaml:"bucket"`
	File       string  `yaml:"file"`
}

func (c *storeConfig) SetDefaults() bool {
	changed := false

	if c.Kind == "" {
		c.Kind = kindSSM
		changed = true
	}

	if c.MaxResults == 0 {
		c.MaxResults = ssm.DefaultMaxResults
		changed = true
	}

	return changed
}

func (c *storeConfig) Validate() error {
	switch c.Kind {
	case kindSSM, kindNATS, kindFile:
	default:
		return fmt.Errorf("%w: %q", errUnknownStore, c.Kind)
	}

	if c.MaxResults < 0 || c.RateLimit < 0 || c.RateBurst < 0 {
		return errNegativeLimits
	}

	return nil
}

// requireBackend checks the settings the selected kind needs once flags are applied.
func (c *storeConfig) requireBackend() error {
	err := c.Validate()
	if err != nil {
		return err
	}

	switch {
	case c.Kind == kindNATS && c.Bucket == "":
		return errMissingBucket
	case c.Kind == kindFile && c.File == "":
		return errMissingFile
	default:
		return nil
	}
}

// factory returns the store factory for the selected kind and a function
// releasing whatever the factory opened.
func (c *storeConfig) factory() (resolver.StoreFactory, func()) {
	switch c.Kind {
	case kindNATS:
		var opened *natskv.Store

		connect := func(ctx context.Context) (resolver.Store, error) {
			store, err := natskv.Connect(ctx, c.NATSURL, c.Bucket)
			if err != nil {
				return nil, err
			}

			opened = store

			return store, nil
		}

		return connect, func() {
			if opened != nil {
				opened.Close()
			}
		}
	case kindFile:
		return func(context.Context) (resolver.Store, error) {
			return file.NewStore(c.File)()
		}, func() {}
	default:
		return ssm.Factory(c.Region,
			ssm.WithMaxResults(c.MaxResults),
			ssm.WithRateLimit(c.RateLimit, c.RateBurst),
		), func() {}
	}
}

// loadVariablesFile reads the params and store sections of the variables file at path.
func loadVariablesFile(path string) (*resolver.FileConfig, *storeConfig, error) {
	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, nil, err
	}

	parser := yamlparser.NewParser()

	vars, err := config.Provider(&resolver.FileConfig{}, "params")(parser, fetcher)
	if err != nil {
		return nil, nil, fmt.Errorf("params section: %w", err)
	}

	store, err := config.OptionalProvider(&storeConfig{}, "store")(parser, fetcher)
	if err != nil {
		return nil, nil, fmt.Errorf("store section: %w", err)
	}

	return vars, store, nil
}
