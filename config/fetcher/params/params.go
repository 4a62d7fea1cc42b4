package params

import (
	"context"
	"fmt"

	"github.com/0xalexb/hjarta-params/resolver"

	"github.com/goccy/go-yaml"
)

// Resolver resolves declared variables into a sink. *resolver.Resolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, sink resolver.Sink) error
}

// Fetcher implements config.DataFetcher over resolved parameters.
// Variables are resolved once at construction and kept as a YAML document.
type Fetcher struct {
	names []string
	data  []byte
}

// NewFetcher resolves every variable of res and renders the result as YAML.
func NewFetcher(ctx context.Context, res Resolver) (*Fetcher, error) {
	sink := resolver.NewMapSink()

	err := res.Resolve(ctx, sink)
	if err != nil {
		return nil, fmt.Errorf("resolving parameters: %w", err)
	}

	data, err := Render(sink)
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		names: sink.Names(),
		data:  data,
	}, nil
}

// Fetch returns a copy of the rendered document.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Names returns the resolved variable names in declaration order.
func (f *Fetcher) Names() []string {
	return append([]string(nil), f.names...)
}

// Render writes the values of sink as a YAML mapping in the order they were set.
// Absent values render as null.
func Render(sink *resolver.MapSink) ([]byte, error) {
	values := sink.Values()
	names := sink.Names()

	doc := make(yaml.MapSlice, 0, len(names))
	for _, name := range names {
		doc = append(doc, yaml.MapItem{Key: name, Value: values[name].Interface()})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering parameters: %w", err)
	}

	return data, nil
}
