package file

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-params/config"
	filefetcher "github.com/0xalexb/hjarta-params/config/fetcher/file"
	"github.com/0xalexb/hjarta-params/resolver"
	"github.com/0xalexb/hjarta-params/store/memory"

	"github.com/goccy/go-yaml"
)

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("document root must be a mapping")

// Store is a resolver.Store holding the parameters of a YAML document.
type Store struct {
	*memory.Store
}

// NewStore returns a constructor that reads the YAML document at fpath once
// and serves its leaves as parameters. Like the file fetcher it builds on,
// the constructor is Fx-friendly.
func NewStore(fpath string, opts ...memory.Option) func() (*Store, error) {
	return func() (*Store, error) {
		fetcher, err := filefetcher.NewFetcher(fpath)()
		if err != nil {
			return nil, err
		}

		return FromFetcher(fetcher, opts...)
	}
}

// FromFetcher builds a Store from any config.DataFetcher producing YAML.
func FromFetcher(fetcher config.DataFetcher, opts ...memory.Option) (*Store, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading parameters: %w", err)
	}

	params, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return &Store{Store: memory.New(params, opts...)}, nil
}

// Parse flattens a YAML mapping into parameters, one per leaf, in document order.
// Nested keys are joined with "/": {app: {db: {port: 5432}}} yields /app/db/port.
// Sequences and empty mappings are leaves.
func Parse(data []byte) ([]resolver.Parameter, error) {
	var doc any

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("parsing parameters: %w", err)
	}

	if doc == nil {
		return nil, nil
	}

	root, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, ErrNotMapping
	}

	var params []resolver.Parameter

	flatten("", root, &params)

	return params, nil
}

func flatten(prefix string, node yaml.MapSlice, out *[]resolver.Parameter) {
	for _, item := range node {
		path := prefix + resolver.Separator + fmt.Sprint(item.Key)

		child, nested := item.Value.(yaml.MapSlice)
		if nested && len(child) > 0 {
			flatten(path, child, out)

			continue
		}

		*out = append(*out, resolver.Parameter{
			Path:    path,
			Value:   resolver.ValueOf(item.Value),
			Type:    typeName(item.Value),
			Version: 1,
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case []any, yaml.MapSlice:
		return "StringList"
	default:
		return "String"
	}
}
