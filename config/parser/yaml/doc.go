// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml for YAML parsing with native
// PathString support for efficient path navigation. The parser converts
// colon-separated paths (e.g., "store:nats") to YAML path format
// (e.g., "$.store.nats") internally.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var cfg resolver.FileConfig
//	err := parser.Parse(data, &cfg, "params")
//
// Path Conversion:
//   - Empty path "" -> unmarshal entire document
//   - Single key "params" -> "$.params"
//   - Nested path "store:nats" -> "$.store.nats"
//
// Missing paths return ErrPathNotFound, which matches config.ErrSectionNotFound.
package yaml
