package resolver

import "context"

// Parameter is a value held by the parameter store under a fully qualified path.
// Type and Version are informational and never take part in resolution.
type Parameter struct {
	Path    string
	Value   Value
	Type    string
	Version int64
}

// PathQuery requests one page of parameters stored under Path.
// An empty NextToken requests the first page.
type PathQuery struct {
	Path           string
	Recursive      bool
	WithDecryption bool
	NextToken      string
}

// Page is one page of a path listing. An empty NextToken means there are no more pages.
type Page struct {
	Parameters []Parameter
	NextToken  string
}

// Store is the parameter store the resolver reads from.
//
// Implementations report failures through StoreError values wrapping
// ErrParameterNotFound, ErrAccessDenied or ErrUnrecognizedClient so that the
// resolver can classify them. Any other error is treated as fatal.
type Store interface {
	GetParameter(ctx context.Context, path string, decrypt bool) (Parameter, error)
	GetParametersByPath(ctx context.Context, query PathQuery) (Page, error)
}

// StoreFactory builds a Store on first use.
type StoreFactory func(ctx context.Context) (Store, error)
