package config_test

import (
	"context"
	"fmt"

	"github.com/0xalexb/hjarta-params/config"
	paramsfetcher "github.com/0xalexb/hjarta-params/config/fetcher/params"
	yamlparser "github.com/0xalexb/hjarta-params/config/parser/yaml"
	"github.com/0xalexb/hjarta-params/resolver"
	"github.com/0xalexb/hjarta-params/store/memory"
)

// AppConfig represents application configuration sourced from a parameter store.
type AppConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SetDefaults sets default values for the configuration.
func (c *AppConfig) SetDefaults() bool {
	if c.Host == "" {
		c.Host = "localhost"

		return true
	}

	return false
}

// StaticDataFetcher implements config.DataFetcher with static data.
type StaticDataFetcher struct {
	Data []byte
}

// Fetch returns the static data.
func (f *StaticDataFetcher) Fetch() ([]byte, error) {
	return f.Data, nil
}

func ExampleProvider() {
	// A variables file declares what to resolve and from where.
	fetcher := &StaticDataFetcher{Data: []byte(`
params:
  root_path: /project/
  variables:
    db_pass: db/password
    debug: [debug, false]
`)}

	vars, err := config.Provider(&resolver.FileConfig{}, "params")(yamlparser.NewParser(), fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Root: %s, Variables: %v\n", vars.RootPath, vars.Variables.Names())
	// Output: Root: /project/, Variables: [db_pass debug]
}

func ExampleOptionalProvider() {
	type StoreSection struct {
		Kind string `yaml:"kind"`
	}

	fetcher := &StaticDataFetcher{Data: []byte("params:\n  variables:\n    a: /a\n")}

	section, err := config.OptionalProvider(&StoreSection{}, "store")(yamlparser.NewParser(), fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Kind: %q\n", section.Kind)
	// Output: Kind: ""
}

func ExampleProvider_parameterStore() {
	// Parameters as they would be held by a remote store.
	store := memory.New([]resolver.Parameter{
		{Path: "/svc/port", Value: resolver.Int(9000)},
	})

	res, err := resolver.New(resolver.Config{
		Client:   store,
		RootPath: "/svc",
		Variables: resolver.Variables{
			resolver.Var("host", "host"),
			resolver.Var("port", "port"),
		},
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	// Resolve once and expose the values as a YAML document.
	fetcher, err := paramsfetcher.NewFetcher(context.Background(), res)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	cfg, err := config.Provider(&AppConfig{}, "")(yamlparser.NewParser(), fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Host: %s, Port: %d\n", cfg.Host, cfg.Port)
	// Output: Host: localhost, Port: 9000
}
