package listener

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthPath answers 200 while the listener is serving.
const HealthPath = "/healthz"

// NewMetricsHandler serves the metrics of gatherer on metricsPath, falling back
// to the default Prometheus gatherer when gatherer is nil.
func NewMetricsHandler(gatherer prometheus.Gatherer, metricsPath string) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	if metricsPath == "" {
		metricsPath = DefaultMetricsPath
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{ //nolint:exhaustruct // only relevant fields needed
		ErrorHandling:     promhttp.ContinueOnError,
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}
