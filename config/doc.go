// Package config provides configuration management functionalities and interfaces.
//
// The package uses an interface-based design with four extension points:
//   - Parser: deserializes raw data into config struct, with path navigation support
//   - DataFetcher: retrieves raw config data (a file, a parameter store, etc.)
//   - Validator: validates config after parsing
//   - Defaulter: applies default values before validation
//
// # Path Navigation
//
// Provider and OptionalProvider accept a path that targets a section of the
// document. Paths use colon (:) as the separator:
//
//	"params"      -> config["params"]
//	"store:nats"  -> config["store"]["nats"]
//	""            -> entire document
//
// OptionalProvider tolerates a missing section and still applies defaults.
//
// # Sources
//
// config/fetcher/file reads a file from disk. config/fetcher/params resolves
// variables against a parameter store and renders them as YAML, so remote
// parameters decode into a typed struct like any other document:
//
//	type DBConfig struct {
//	    Password string `yaml:"db_pass"`
//	    Port     int    `yaml:"db_port"`
//	}
//
//	fetcher, err := params.NewFetcher(ctx, res)
//	cfg, err := config.Provider(&DBConfig{}, "")(yamlparser.NewParser(), fetcher)
package config
