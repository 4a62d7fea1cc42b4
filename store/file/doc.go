// Package file provides a resolver.Store backed by a YAML document.
//
// The document is read once through config/fetcher/file and flattened into
// parameters, which makes it a stand-in for a remote parameter store during
// local development:
//
//	project:
//	  db:
//	    password: secret
//	    port: 5432
//	  debug: false
//
// serves /project/db/password, /project/db/port and /project/debug. Booleans,
// numbers and lists keep their YAML types.
//
// Usage:
//
//	store, err := file.NewStore("parameters.yaml")()
package file
