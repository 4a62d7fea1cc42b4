package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrSectionNotFound is wrapped by parsers when the requested path does not exist in the document.
var ErrSectionNotFound = errors.New("configuration section not found")

// Parser defines an interface for parsing configuration data into a target structure.
//
// The path parameter specifies a navigation path within the configuration data
// using colon (:) as the separator for nested keys. For example:
//   - "params" navigates to config["params"]
//   - "store:nats" navigates to config["store"]["nats"]
//   - "" (empty path) means parse the entire document
//
// Parser implementations are responsible for path navigation internally and
// wrap ErrSectionNotFound when the path is missing.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads, parses, sets defaults, and validates configuration data.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		return provide(parser, dataSourcer, target, path, false)
	}
}

// OptionalProvider behaves like Provider but treats a missing section as empty:
// defaults are applied and the target is validated as if the section were there.
func OptionalProvider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		return provide(parser, dataSourcer, target, path, true)
	}
}

func provide[T any](parser Parser, dataSourcer DataFetcher, target *T, path string, optional bool) (*T, error) {
	data, err := dataSourcer.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	err = parser.Parse(data, target, path)
	if err != nil {
		if !optional || !errors.Is(err, ErrSectionNotFound) {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		slog.Debug("optional section missing", slog.String("path", path))
	}

	targetDefaulter, isDefaulter := any(target).(Defaulter)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			slog.Info("defaults applied", slog.String("path", path))
		}
	}

	targetValidatable, isValidatable := any(target).(Validator)
	if isValidatable {
		err := targetValidatable.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	return target, nil
}
