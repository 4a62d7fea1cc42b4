package resolver

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution outcomes recorded per variable.
const (
	OutcomeValue   = "value"
	OutcomeDefault = "default"
	OutcomeAbsent  = "absent"
)

// Metrics records store traffic and resolution outcomes. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	fetched  prometheus.Gauge
	resolved *prometheus.CounterVec
}

// NewMetrics creates the resolver collectors and registers them with reg.
// Collectors already registered by a previous call are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hjarta",
		Subsystem: "params",
		Name:      "store_requests_total",
		Help:      "Requests issued to the parameter store.",
	}, []string{"mode", "op"})

	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hjarta",
		Subsystem: "params",
		Name:      "store_errors_total",
		Help:      "Parameter store errors by class.",
	}, []string{"mode", "class"})

	fetched := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hjarta",
		Subsystem: "params",
		Name:      "parameters_fetched",
		Help:      "Parameters held by the most recent snapshot.",
	})

	resolved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hjarta",
		Subsystem: "params",
		Name:      "variables_resolved_total",
		Help:      "Variables handed to the sink by outcome.",
	}, []string{"outcome"})

	metrics := &Metrics{}

	var err error

	if metrics.requests, err = register(reg, requests); err != nil {
		return nil, err
	}

	if metrics.errors, err = register(reg, storeErrors); err != nil {
		return nil, err
	}

	if metrics.fetched, err = register(reg, fetched); err != nil {
		return nil, err
	}

	if metrics.resolved, err = register(reg, resolved); err != nil {
		return nil, err
	}

	return metrics, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegErr prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegErr) {
		existing, ok := alreadyRegErr.ExistingCollector.(C)
		if ok {
			return existing, nil
		}
	}

	var zero C

	return zero, fmt.Errorf("registering metrics: %w", err)
}

func (m *Metrics) request(mode Mode, op string) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(string(mode), op).Inc()
}

func (m *Metrics) storeError(mode Mode, class string) {
	if m == nil {
		return
	}

	m.errors.WithLabelValues(string(mode), class).Inc()
}

func (m *Metrics) snapshot(size int) {
	if m == nil {
		return
	}

	m.fetched.Set(float64(size))
}

func (m *Metrics) outcome(outcome string) {
	if m == nil {
		return
	}

	m.resolved.WithLabelValues(outcome).Inc()
}
