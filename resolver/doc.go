// Package resolver resolves declared configuration variables against a
// hierarchical parameter store.
//
// A Resolver is built from a Config in two steps. New only validates the
// configuration. Load talks to the store once and returns a read-only
// Snapshot, which Run applies to a Sink:
//
//	res, err := resolver.New(resolver.Config{
//	    Client:   store,
//	    RootPath: "/project/",
//	    Variables: resolver.Variables{
//	        resolver.Var("db_pass", "db/password"),
//	        resolver.VarWithDefault("region", "region", resolver.String("eu-west-1")),
//	    },
//	})
//	snapshot, err := res.Load(ctx)
//	snapshot.Run(sink)
//
// # Fetching
//
// With an empty root path every variable is fetched on its own, using the
// declared path as is. Missing parameters are skipped unless
// RaiseOnParameterNotFound is set. With a root path the store is listed
// recursively, following continuation tokens until none is returned.
//
// # Matching
//
// A declared path is qualified by trimming one trailing "/" from the root
// path, stripping one leading "/" from the declared path and joining both
// with a single "/". Lookups use exact string equality and the first
// parameter with a matching path wins.
//
// # Defaults
//
// Defaults replace absent values and empty strings or collections. They never
// replace booleans or numbers.
//
// # Errors
//
// Store errors are returned as *Error, which matches ErrResolve with
// errors.Is and keeps the store error in its chain.
package resolver
