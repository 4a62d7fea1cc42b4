package resolver

import (
	"log/slog"
	"slices"
)

// Snapshot holds the parameters fetched by one Load. It is read-only, so Run
// and Lookup may be called from several goroutines.
type Snapshot struct {
	rootPath  string
	variables Variables
	params    []Parameter
	index     map[string]int
	logger    *slog.Logger
	metrics   *Metrics
}

func newSnapshot(rootPath string, vars Variables, params []Parameter, logger *slog.Logger, metrics *Metrics) *Snapshot {
	index := make(map[string]int, len(params))

	for idx, param := range params {
		if _, dup := index[param.Path]; dup {
			// first match wins
			logger.Debug("duplicate parameter path in snapshot", slog.String("path", param.Path))

			continue
		}

		index[param.Path] = idx
	}

	return &Snapshot{
		rootPath:  rootPath,
		variables: vars,
		params:    params,
		index:     index,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run resolves every declared variable against the snapshot and hands the
// result to sink, once per variable and in declaration order. Absent values
// are handed over as well.
func (s *Snapshot) Run(sink Sink) {
	for _, variable := range s.variables {
		raw, _ := s.Match(variable.Path)
		value, outcome := resolveValue(raw, variable.Default)

		s.metrics.outcome(outcome)
		s.logger.Debug("variable resolved",
			slog.String("variable", variable.Name),
			slog.String("path", QualifiedPath(s.rootPath, variable.Path)),
			slog.String("outcome", outcome),
			slog.String("kind", value.Kind().String()))

		sink.Set(variable.Name, value)
	}
}

// Match qualifies a declared path with the root path and looks it up.
func (s *Snapshot) Match(rel string) (Value, bool) {
	return s.Lookup(QualifiedPath(s.rootPath, rel))
}

// Lookup returns the value of the first parameter whose path equals path exactly.
func (s *Snapshot) Lookup(path string) (Value, bool) {
	idx, ok := s.index[path]
	if !ok {
		return Absent(), false
	}

	return s.params[idx].Value, true
}

// Parameters returns a copy of the fetched parameters in store order.
func (s *Snapshot) Parameters() []Parameter {
	return slices.Clone(s.params)
}

// Len returns the number of fetched parameters.
func (s *Snapshot) Len() int {
	return len(s.params)
}
