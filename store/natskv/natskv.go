package natskv

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-params/resolver"
	"github.com/0xalexb/hjarta-params/store/memory"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// KeySeparator separates the tokens of a bucket key.
const KeySeparator = "."

// Error classes reported in resolver.StoreError.
const (
	ClassKeyNotFound      = "KeyNotFound"
	ClassAccessDenied     = "AuthorizationViolation"
	ClassBucketNotFound   = "BucketNotFound"
	ClassJetStreamMissing = "JetStreamNotEnabled"
)

// ErrInvalidNextToken is returned when a listing is resumed with a token this store did not issue.
var ErrInvalidNextToken = errors.New("invalid next token")

// KV is the part of jetstream.KeyValue the store calls.
type KV interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	ListKeys(ctx context.Context, opts ...jetstream.WatchOpt) (jetstream.KeyLister, error)
}

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

// Store is a resolver.Store reading a JetStream key-value bucket.
type Store struct {
	kv       KV
	pageSize int
	conn     *nats.Conn
}

// New wraps a bucket handle. The caller keeps ownership of the connection behind it.
func New(kv KV, opts ...Option) *Store {
	store := &Store{
		kv:       kv,
		pageSize: memory.DefaultPageSize,
		conn:     nil,
	}

	for _, apply := range opts {
		apply(store)
	}

	return store
}

// Connect dials url and opens bucket. The returned Store owns the connection; call Close when done.
func Connect(ctx context.Context, url, bucket string, opts ...Option) (*Store, error) {
	conn, err := nats.Connect(url, nats.Name("hjarta-params"))
	if err != nil {
		return nil, translate(fmt.Errorf("connecting to %s: %w", url, err))
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()

		return nil, translate(fmt.Errorf("creating jetstream context: %w", err))
	}

	kv, err := js.KeyValue(ctx, bucket)
	if err != nil {
		conn.Close()

		return nil, translate(fmt.Errorf("opening bucket %q: %w", bucket, err))
	}

	store := New(kv, opts...)
	store.conn = conn

	return store, nil
}

// Factory returns a resolver.StoreFactory that connects on first use.
func Factory(url, bucket string, opts ...Option) resolver.StoreFactory {
	return func(ctx context.Context) (resolver.Store, error) {
		return Connect(ctx, url, bucket, opts...)
	}
}

// Close closes the connection opened by Connect. It is a no-op for stores built with New.
func (s *Store) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// KeyOf maps a parameter path onto a bucket key.
func KeyOf(path string) string {
	return strings.ReplaceAll(strings.TrimPrefix(path, resolver.Separator), resolver.Separator, KeySeparator)
}

// PathOf maps a bucket key onto a parameter path.
func PathOf(key string) string {
	return resolver.Separator + strings.ReplaceAll(key, KeySeparator, resolver.Separator)
}

// GetParameter reads the key for path. Values are never encrypted, so decrypt is ignored.
func (s *Store) GetParameter(ctx context.Context, path string, _ bool) (resolver.Parameter, error) {
	entry, err := s.kv.Get(ctx, KeyOf(path))
	if err != nil {
		return resolver.Parameter{}, translate(err)
	}

	return convert(path, entry), nil
}

// GetParametersByPath lists the keys below query.Path and reads one page of them.
// Keys are served in lexical order of their paths; the token is the offset of the next page.
func (s *Store) GetParametersByPath(ctx context.Context, query resolver.PathQuery) (resolver.Page, error) {
	offset := 0

	if query.NextToken != "" {
		parsed, err := strconv.Atoi(query.NextToken)
		if err != nil || parsed < 0 {
			return resolver.Page{}, fmt.Errorf("%w: %q", ErrInvalidNextToken, query.NextToken)
		}

		offset = parsed
	}

	paths, err := s.paths(ctx, query.Path, query.Recursive)
	if err != nil {
		return resolver.Page{}, err
	}

	if offset > len(paths) {
		return resolver.Page{}, fmt.Errorf("%w: %q", ErrInvalidNextToken, query.NextToken)
	}

	end := min(offset+s.pageSize, len(paths))
	page := resolver.Page{
		Parameters: make([]resolver.Parameter, 0, end-offset),
		NextToken:  "",
	}

	for _, path := range paths[offset:end] {
		entry, err := s.kv.Get(ctx, KeyOf(path))
		if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
			continue
		}

		if err != nil {
			return resolver.Page{}, translate(err)
		}

		page.Parameters = append(page.Parameters, convert(path, entry))
	}

	if end < len(paths) {
		page.NextToken = strconv.Itoa(end)
	}

	return page, nil
}

func (s *Store) paths(ctx context.Context, root string, recursive bool) ([]string, error) {
	lister, err := s.kv.ListKeys(ctx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return nil, nil
	}

	if err != nil {
		return nil, translate(err)
	}

	defer func() { _ = lister.Stop() }()

	var all []resolver.Parameter
	for key := range lister.Keys() {
		all = append(all, resolver.Parameter{Path: PathOf(key)})
	}

	below := memory.Below(all, root, recursive)

	paths := make([]string, 0, len(below))
	for _, param := range below {
		paths = append(paths, param.Path)
	}

	slices.Sort(paths)

	return paths, nil
}

func convert(path string, entry jetstream.KeyValueEntry) resolver.Parameter {
	return resolver.Parameter{
		Path:    path,
		Value:   resolver.String(string(entry.Value())),
		Type:    "String",
		Version: int64(entry.Revision()), //nolint:gosec // revisions stay far below MaxInt64
	}
}

// translate maps NATS errors onto resolver sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, jetstream.ErrKeyNotFound),
		errors.Is(err, jetstream.ErrKeyDeleted),
		errors.Is(err, jetstream.ErrInvalidKey):
		return &resolver.StoreError{
			Class:   ClassKeyNotFound,
			Message: err.Error(),
			Err:     errors.Join(resolver.ErrParameterNotFound, err),
		}
	case errors.Is(err, nats.ErrAuthorization), errors.Is(err, nats.ErrPermissionViolation):
		return &resolver.StoreError{
			Class:   ClassAccessDenied,
			Message: err.Error(),
			Err:     errors.Join(resolver.ErrAccessDenied, err),
		}
	case errors.Is(err, jetstream.ErrBucketNotFound):
		return &resolver.StoreError{
			Class:   ClassBucketNotFound,
			Message: err.Error(),
			Err:     errors.Join(resolver.ErrUnrecognizedClient, err),
		}
	case errors.Is(err, jetstream.ErrJetStreamNotEnabled), errors.Is(err, nats.ErrNoResponders):
		return &resolver.StoreError{
			Class:   ClassJetStreamMissing,
			Message: err.Error(),
			Err:     errors.Join(resolver.ErrUnrecognizedClient, err),
		}
	default:
		return fmt.Errorf("nats request: %w", err)
	}
}
