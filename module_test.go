package params_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"

	params "github.com/0xalexb/hjarta-params"
	"github.com/0xalexb/hjarta-params/listener"
	"github.com/0xalexb/hjarta-params/resolver"
	"github.com/0xalexb/hjarta-params/store/memory"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModule_ProvidesResolverWithoutFetching(t *testing.T) {
	t.Parallel()

	store := newStore()

	var res *resolver.Resolver

	app := fxtest.New(t,
		fx.Supply(fx.Annotate(store, fx.As(new(resolver.Store)))),
		params.Module(resolution()),
		fx.Populate(&res),
	)

	require.NotNil(t, res)
	assert.Equal(t, resolver.ModeTree, res.Mode())

	get, list := store.Calls()
	assert.Zero(t, get+list, "nothing is fetched before start")

	app.RequireStart()
	t.Cleanup(app.RequireStop)

	_, list = store.Calls()
	assert.Equal(t, 1, list)
}

func TestModule_DefaultClientIsNotBuiltBeforeStart(t *testing.T) {
	t.Parallel()

	var res *resolver.Resolver

	app := fxtest.New(t,
		params.Module(resolution()),
		fx.Populate(&res),
	)

	require.NoError(t, app.Err())
	require.NotNil(t, res)
	assert.Equal(t, "/project/", res.RootPath())
}

func TestModule_ContainerStoreWinsOverDefaultClient(t *testing.T) {
	t.Parallel()

	store := newStore()

	app := fxtest.New(t,
		fx.Supply(fx.Annotate(store, fx.As(new(resolver.Store)))),
		params.Module(resolution()),
	)

	app.RequireStart()
	t.Cleanup(app.RequireStop)

	_, list := store.Calls()
	assert.Equal(t, 1, list)
}

func TestModule_UsesContainerLogger(t *testing.T) {
	t.Parallel()

	var records []string

	handler := slog.NewTextHandler(writerFunc(func(p []byte) (int, error) {
		records = append(records, string(p))

		return len(p), nil
	}), &slog.HandlerOptions{Level: slog.LevelDebug})

	app := fxtest.New(t,
		fx.Supply(slog.New(handler)),
		fx.Supply(fx.Annotate(newStore(), fx.As(new(resolver.Store)))),
		params.Module(resolution()),
	)

	app.RequireStart()
	t.Cleanup(app.RequireStop)

	require.NotEmpty(t, records)
	assert.Contains(t, records[0], "component=params")
}

func TestModule_InvalidConfigFailsGraph(t *testing.T) {
	t.Parallel()

	cfg := resolution()
	cfg.Variables = append(cfg.Variables, resolver.Var("db_pass", "other"))

	app := fx.New(
		fx.NopLogger,
		fx.Supply(fx.Annotate(memory.New(nil), fx.As(new(resolver.Store)))),
		params.Module(cfg),
		fx.Invoke(func(*resolver.Resolver) {}),
	)

	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), resolver.ErrDuplicateVariable.Error())
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func freeAddress(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func scrape(t *testing.T, url string) string {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestListenerModule_ServesResolverMetrics(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)

	app := fxtest.New(t,
		fx.Supply(fx.Annotate(newStore(), fx.As(new(resolver.Store)))),
		params.Module(resolution()),
		params.MetricsModule(prometheus.NewRegistry()),
		params.ListenerModule("metrics", listener.WithAddress(addr)),
	)

	app.RequireStart()
	t.Cleanup(app.RequireStop)

	body := scrape(t, "http://"+addr+listener.DefaultMetricsPath)

	assert.Contains(t, body, "hjarta_params_store_requests_total")
	assert.Contains(t, body, `hjarta_params_variables_resolved_total{outcome="default"} 1`)
}

func TestListenerModule_CustomPath(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)

	app := fxtest.New(t,
		fx.Supply(fx.Annotate(newStore(), fx.As(new(resolver.Store)))),
		params.Module(resolution()),
		params.MetricsModule(prometheus.NewRegistry()),
		params.ListenerModule("metrics", listener.WithAddress(addr), listener.WithMetricsPath("/internal/metrics")),
	)

	app.RequireStart()
	t.Cleanup(app.RequireStop)

	assert.Contains(t, scrape(t, "http://"+addr+"/internal/metrics"), "hjarta_params_store_requests_total")
}
