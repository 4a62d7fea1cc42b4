// Package memory provides an in-process resolver.Store.
//
// Parameters keep their insertion order, listings are paginated with a
// numeric continuation token, and every call is counted so tests can assert
// on the traffic a resolver generates.
package memory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/0xalexb/hjarta-params/resolver"
)

// DefaultPageSize matches the default page size of AWS Parameter Store listings.
const DefaultPageSize = 10

// ErrInvalidNextToken is returned when a listing is resumed with a token this store did not issue.
var ErrInvalidNextToken = errors.New("invalid next token")

// Option configures a Store.
type Option func(*Store)

// WithPageSize sets the number of parameters returned per listing page.
func WithPageSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// Store is a resolver.Store backed by a slice. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	params    []resolver.Parameter
	pageSize  int
	failure   error
	getCalls  int
	listCalls int
}

// New returns a Store holding params.
func New(params []resolver.Parameter, opts ...Option) *Store {
	store := &Store{
		params:   append([]resolver.Parameter(nil), params...),
		pageSize: DefaultPageSize,
	}

	for _, apply := range opts {
		apply(store)
	}

	return store
}

// Put appends a parameter. Existing paths are not replaced, so a later Put creates a duplicate.
func (s *Store) Put(path string, value resolver.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = append(s.params, resolver.Parameter{Path: path, Value: value, Type: "String", Version: 1})
}

// FailWith makes every following call return err. A nil err clears the failure.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failure = err
}

// Calls returns how many GetParameter and GetParametersByPath calls were made.
func (s *Store) Calls() (get, list int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getCalls, s.listCalls
}

// GetParameter returns the first parameter stored under path.
func (s *Store) GetParameter(_ context.Context, path string, _ bool) (resolver.Parameter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++

	if s.failure != nil {
		return resolver.Parameter{}, s.failure
	}

	for _, param := range s.params {
		if param.Path == path {
			return param, nil
		}
	}

	return resolver.Parameter{}, resolver.NewStoreError(resolver.ErrParameterNotFound,
		"ParameterNotFound", fmt.Sprintf("parameter %s not found", path))
}

// GetParametersByPath returns one page of the parameters stored below query.Path.
// Non-recursive listings only include direct children.
func (s *Store) GetParametersByPath(_ context.Context, query resolver.PathQuery) (resolver.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listCalls++

	if s.failure != nil {
		return resolver.Page{}, s.failure
	}

	offset := 0

	if query.NextToken != "" {
		parsed, err := strconv.Atoi(query.NextToken)
		if err != nil || parsed < 0 {
			return resolver.Page{}, fmt.Errorf("%w: %q", ErrInvalidNextToken, query.NextToken)
		}

		offset = parsed
	}

	matching := Below(s.params, query.Path, query.Recursive)
	if offset > len(matching) {
		return resolver.Page{}, fmt.Errorf("%w: %q", ErrInvalidNextToken, query.NextToken)
	}

	end := min(offset+s.pageSize, len(matching))

	page := resolver.Page{
		Parameters: append([]resolver.Parameter(nil), matching[offset:end]...),
		NextToken:  "",
	}

	if end < len(matching) {
		page.NextToken = strconv.Itoa(end)
	}

	return page, nil
}

// Below filters params to those under root. Non-recursive filtering keeps direct children only.
func Below(params []resolver.Parameter, root string, recursive bool) []resolver.Parameter {
	prefix := strings.TrimSuffix(root, resolver.Separator) + resolver.Separator

	var out []resolver.Parameter

	for _, param := range params {
		rest, found := strings.CutPrefix(param.Path, prefix)
		if !found || rest == "" {
			continue
		}

		if !recursive && strings.Contains(rest, resolver.Separator) {
			continue
		}

		out = append(out, param)
	}

	return out
}
