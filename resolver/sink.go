package resolver

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Sink receives resolved values.
type Sink interface {
	Set(name string, value Value)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(name string, value Value)

// Set calls f(name, value).
func (f SinkFunc) Set(name string, value Value) {
	f(name, value)
}

// MapSink keeps resolved values in memory. It is safe for concurrent use.
type MapSink struct {
	mu     sync.RWMutex
	values map[string]Value
	names  []string
}

// NewMapSink returns an empty MapSink.
func NewMapSink() *MapSink {
	return &MapSink{
		values: make(map[string]Value),
		names:  nil,
	}
}

// Set stores value under name. Setting a name again keeps its original position.
func (s *MapSink) Set(name string, value Value) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		s.values = make(map[string]Value)
	}

	if _, exists := s.values[name]; !exists {
		s.names = append(s.names, name)
	}

	s.values[name] = value
}

// Get returns the value stored under name.
func (s *MapSink) Get(name string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[name]

	return value, ok
}

// Names returns the names in the order they were first set.
func (s *MapSink) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.names...)
}

// Values returns a copy of all stored values.
func (s *MapSink) Values() map[string]Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Value, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}

	return out
}

// EnvSink exports resolved values as process environment variables.
// Names are prefixed with Prefix and upper-cased when Upper is set.
// Absent values unset the variable.
type EnvSink struct {
	Prefix string
	Upper  bool

	setenv   func(key, value string) error
	unsetenv func(key string) error

	mu   sync.Mutex
	errs []error
}

// NewEnvSink returns an EnvSink writing to the process environment.
func NewEnvSink(prefix string, upper bool) *EnvSink {
	return &EnvSink{
		Prefix:   prefix,
		Upper:    upper,
		setenv:   os.Setenv,
		unsetenv: os.Unsetenv,
	}
}

// Key returns the environment variable name used for name.
func (s *EnvSink) Key(name string) string {
	key := s.Prefix + name
	if s.Upper {
		key = strings.ToUpper(key)
	}

	return key
}

// Set exports value under Key(name). Failures are collected and reported by Err.
func (s *EnvSink) Set(name string, value Value) {
	key := s.Key(name)

	setenv, unsetenv := s.setenv, s.unsetenv
	if setenv == nil || unsetenv == nil {
		setenv, unsetenv = os.Setenv, os.Unsetenv
	}

	var err error
	if value.IsAbsent() {
		err = unsetenv(key)
	} else {
		err = setenv(key, value.String())
	}

	if err != nil {
		s.mu.Lock()
		s.errs = append(s.errs, fmt.Errorf("exporting %q: %w", key, err))
		s.mu.Unlock()
	}
}

// Err returns the errors collected by Set, if any.
func (s *EnvSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(s.errs...)
}
