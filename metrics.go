package params

import (
	"fmt"
	"net/http"

	"github.com/0xalexb/hjarta-params/listener"
	"github.com/0xalexb/hjarta-params/resolver"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// MetricsModule registers the resolver metrics with reg and provides them to
// Module. When reg can also gather, as a *prometheus.Registry does, it is
// provided as the prometheus.Gatherer that ListenerModule serves.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func MetricsModule(reg prometheus.Registerer) fx.Option {
	opts := []fx.Option{
		fx.Provide(func() (*resolver.Metrics, error) {
			return resolver.NewMetrics(reg)
		}),
	}

	if gatherer, ok := reg.(prometheus.Gatherer); ok {
		opts = append(opts, fx.Supply(fx.Annotate(gatherer, fx.As(new(prometheus.Gatherer)))))
	}

	return fx.Options(opts...)
}

// ListenerModule runs a named HTTP listener serving the container's
// prometheus.Gatherer, or the default Prometheus gatherer when there is none.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func ListenerModule(name string, opts ...listener.Option) fx.Option {
	cfg := listener.NewConfig(opts...)
	nameTag := fmt.Sprintf(`name:"%s"`, name)

	return fx.Options(
		fx.Supply(fx.Annotate(cfg, fx.ResultTags(nameTag))),
		fx.Provide(fx.Annotate(
			func(gatherer prometheus.Gatherer) http.Handler {
				return listener.NewMetricsHandler(gatherer, cfg.MetricsPath)
			},
			fx.ParamTags(`optional:"true"`),
			fx.ResultTags(nameTag),
		)),
		listener.NewModule(name),
	)
}
