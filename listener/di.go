package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// NewModule creates an Fx module running a named listener.
// The name is the module name and the DI named tag of the http.Handler and
// Config it consumes. With options the module supplies the Config itself;
// without, the Config must be provided elsewhere, e.g. by config.Provider.
// The listener logs through the container's *slog.Logger when there is one.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	nameTag := fmt.Sprintf(`name:"%s"`, name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		moduleOpts = append(moduleOpts, fx.Supply(
			fx.Annotate(NewConfig(opts...), fx.ResultTags(nameTag)),
		))
	}

	moduleOpts = append(moduleOpts,
		fx.Provide(fx.Annotate(
			func(handler http.Handler, cfg Config, logger *slog.Logger, shutdowner fx.Shutdowner) (*Server, error) {
				if logger == nil {
					logger = slog.Default()
				}

				return NewServer(name, handler, cfg, logger, func() {
					shutdownErr := shutdowner.Shutdown()
					if shutdownErr != nil {
						logger.Error("failed to trigger shutdown", slog.String("listener", name), slog.Any("error", shutdownErr))
					}
				})
			},
			fx.ParamTags(nameTag, nameTag, `optional:"true"`, ""),
			fx.ResultTags(nameTag),
		)),
		fx.Invoke(fx.Annotate(
			func(lifecycle fx.Lifecycle, srv *Server) {
				lifecycle.Append(fx.Hook{
					OnStart: srv.Start,
					OnStop:  srv.Stop,
				})
			},
			fx.ParamTags("", nameTag),
		)),
	)

	return fx.Module(name, moduleOpts...)
}
