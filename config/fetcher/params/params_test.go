package params_test

import (
	"context"
	"errors"
	"testing"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/config/fetcher/params"
	yamlparser "github.com/0xalexb/hjarta-params/config/parser/yaml"
	"github.com/0xalexb/hjarta-params/resolver"
	"github.com/0xalexb/hjarta-params/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbConfig struct {
	Password string   `yaml:"db_pass"`
	Port     int      `yaml:"db_port"`
	Debug    bool     `yaml:"debug"`
	Hosts    []string `yaml:"hosts"`
	Region   string   `yaml:"region"`
}

func (c *dbConfig) SetDefaults() bool {
	if c.Region == "" {
		c.Region = "eu-west-1"

		return true
	}

	return false
}

func newResolver(t *testing.T, store resolver.Store, raise bool) *resolver.Resolver {
	t.Helper()

	res, err := resolver.New(resolver.Config{
		Client:                   store,
		RootPath:                 "/svc",
		RaiseOnParameterNotFound: raise,
		Variables: resolver.Variables{
			resolver.Var("db_pass", "db/password"),
			resolver.VarWithDefault("db_port", "db/port", resolver.Int(5432)),
			resolver.Var("debug", "debug"),
			resolver.Var("hosts", "hosts"),
			resolver.Var("region", "region"),
		},
	})
	require.NoError(t, err)

	return res
}

func TestFetcher_DecodesIntoStruct(t *testing.T) {
	t.Parallel()

	store := memory.New([]resolver.Parameter{
		{Path: "/svc/db/password", Value: resolver.String("secret")},
		{Path: "/svc/db/port", Value: resolver.String("")},
		{Path: "/svc/debug", Value: resolver.Bool(true)},
		{Path: "/svc/hosts", Value: resolver.Collection(resolver.String("a"), resolver.String("b"))},
	})

	fetcher, err := params.NewFetcher(context.Background(), newResolver(t, store, false))
	require.NoError(t, err)

	assert.Equal(t, []string{"db_pass", "db_port", "debug", "hosts", "region"}, fetcher.Names())

	cfg, err := config.Provider(&dbConfig{}, "")(yamlparser.NewParser(), fetcher)
	require.NoError(t, err)

	assert.Equal(t, &dbConfig{
		Password: "secret",
		Port:     5432,
		Debug:    true,
		Hosts:    []string{"a", "b"},
		Region:   "eu-west-1",
	}, cfg)
}

func TestFetcher_ReturnsCopy(t *testing.T) {
	t.Parallel()

	store := memory.New([]resolver.Parameter{{Path: "/svc/db/password", Value: resolver.String("secret")}})

	fetcher, err := params.NewFetcher(context.Background(), newResolver(t, store, false))
	require.NoError(t, err)

	data1, err := fetcher.Fetch()
	require.NoError(t, err)

	data1[0] = 'X'

	data2, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.NotEqual(t, data1, data2)

	get, list := store.Calls()
	assert.Zero(t, get)
	assert.Equal(t, 1, list, "Fetch never goes back to the store")
}

func TestFetcher_ResolveError(t *testing.T) {
	t.Parallel()

	store := memory.New(nil)
	store.FailWith(resolver.NewStoreError(resolver.ErrAccessDenied, "AccessDeniedException", "denied"))

	fetcher, err := params.NewFetcher(context.Background(), newResolver(t, store, false))

	require.Error(t, err)
	assert.Nil(t, fetcher)
	require.ErrorIs(t, err, resolver.ErrAccessDenied)
	assert.Contains(t, err.Error(), "resolving parameters")
}

func TestRender_AbsentAsNull(t *testing.T) {
	t.Parallel()

	sink := resolver.NewMapSink()
	sink.Set("missing", resolver.Absent())
	sink.Set("name", resolver.String("svc"))

	data, err := params.Render(sink)
	require.NoError(t, err)

	var decoded map[string]any

	err = yamlparser.NewParser().Parse(data, &decoded, "")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"missing": nil, "name": "svc"}, decoded)
}

type resolverFunc func(ctx context.Context, sink resolver.Sink) error

func (f resolverFunc) Resolve(ctx context.Context, sink resolver.Sink) error {
	return f(ctx, sink)
}

func TestNewFetcher_AcceptsAnyResolver(t *testing.T) {
	t.Parallel()

	failure := errors.New("offline")

	_, err := params.NewFetcher(context.Background(), resolverFunc(func(context.Context, resolver.Sink) error {
		return failure
	}))
	require.ErrorIs(t, err, failure)

	fetcher, err := params.NewFetcher(context.Background(), resolverFunc(func(_ context.Context, sink resolver.Sink) error {
		sink.Set("port", resolver.Int(8080))

		return nil
	}))
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "port: 8080\n", string(data))
}
