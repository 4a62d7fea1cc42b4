package params

import (
	"context"
	"log/slog"

	"github.com/0xalexb/hjarta-params/resolver"
	"github.com/0xalexb/hjarta-params/store/ssm"

	"go.uber.org/fx"
)

// ModuleName is the Fx module name of the resolution.
const ModuleName = "params"

type resolverParams struct {
	fx.In

	Logger  *slog.Logger      `optional:"true"`
	Metrics *resolver.Metrics `optional:"true"`
	Store   resolver.Store    `optional:"true"`
}

type resolveParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Resolver  *resolver.Resolver
	Values    *resolver.MapSink
	Sink      resolver.Sink `optional:"true"`
}

// Module creates an Fx module that resolves cfg once the application starts.
//
// The module provides *resolver.Resolver and a *resolver.MapSink holding the
// resolved values. Fields left empty in cfg are filled from the container:
// the client from a resolver.Store, the logger from *slog.Logger and the
// metrics from *resolver.Metrics. Without any client, an AWS Parameter Store
// client is built from the default credential chain on the first resolution.
// A supplied resolver.Sink receives every value as well. Resolution errors
// abort the start.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(cfg resolver.Config) fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(func(deps resolverParams) (*resolver.Resolver, error) {
			resolved := cfg
			if resolved.Client == nil && resolved.ClientFactory == nil {
				resolved.Client = deps.Store
			}

			if resolved.Client == nil && resolved.ClientFactory == nil {
				resolved.ClientFactory = ssm.Factory("")
			}

			if resolved.Logger == nil {
				resolved.Logger = deps.Logger
			}

			if resolved.Metrics == nil {
				resolved.Metrics = deps.Metrics
			}

			return resolver.New(resolved)
		}),
		fx.Provide(resolver.NewMapSink),
		fx.Invoke(func(deps resolveParams) {
			deps.Lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return resolve(ctx, deps)
				},
			})
		}),
	)
}

func resolve(ctx context.Context, deps resolveParams) error {
	snapshot, err := deps.Resolver.Load(ctx)
	if err != nil {
		return err
	}

	snapshot.Run(resolver.SinkFunc(func(name string, value resolver.Value) {
		deps.Values.Set(name, value)

		if deps.Sink != nil {
			deps.Sink.Set(name, value)
		}
	}))

	return nil
}
