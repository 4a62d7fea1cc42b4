// Package params provides a config.DataFetcher backed by a parameter store.
//
// The fetcher resolves a resolver.Resolver once at construction and renders
// the values as a YAML mapping keyed by variable name. Combined with the YAML
// parser, remote parameters decode into a typed configuration struct:
//
//	fetcher, err := params.NewFetcher(ctx, res)
//	if err != nil {
//	    // Handle resolution error: access denied, missing parameter, etc.
//	}
//	cfg, err := config.Provider(&AppConfig{}, "")(yamlparser.NewParser(), fetcher)
//
// Absent values render as null and leave the matching struct field at its
// zero value, where a Defaulter can fill it in.
package params
