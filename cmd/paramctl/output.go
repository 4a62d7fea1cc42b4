package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	paramsfetcher "github.com/0xalexb/hjarta-params/config/fetcher/params"
	"github.com/0xalexb/hjarta-params/resolver"
)

// Output formats accepted by --format.
const (
	formatEnv  = "env"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	errUnknownFormat  = errors.New("unknown output format")
	errInvalidEnvName = errors.New("not a valid shell variable name")
)

var envName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type envNaming struct {
	prefix string
	upper  bool
}

func writeValues(w io.Writer, format string, naming envNaming, values *resolver.MapSink) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case formatEnv:
		data, err = renderEnv(naming, values)
	case formatJSON:
		data, err = renderJSON(values)
	case formatYAML:
		data, err = paramsfetcher.Render(values)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}

	if err != nil {
		return err
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing values: %w", err)
	}

	return nil
}

// renderEnv prints export lines suitable for eval in a POSIX shell.
// Absent values unset the variable. Nothing is printed when any name would not
// be a shell identifier.
func renderEnv(naming envNaming, values *resolver.MapSink) ([]byte, error) {
	keys := resolver.EnvSink{Prefix: naming.prefix, Upper: naming.upper}

	for _, name := range values.Names() {
		if key := keys.Key(name); !envName.MatchString(key) {
			return nil, fmt.Errorf("variable %q: %w: %q", name, errInvalidEnvName, key)
		}
	}

	var buf bytes.Buffer

	for _, name := range values.Names() {
		value, _ := values.Get(name)
		key := keys.Key(name)

		if value.IsAbsent() {
			fmt.Fprintf(&buf, "unset %s\n", key)

			continue
		}

		fmt.Fprintf(&buf, "export %s=%s\n", key, shellQuote(value.String()))
	}

	return buf.Bytes(), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// renderJSON writes an object keyed by variable name in declaration order.
func renderJSON(values *resolver.MapSink) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, name := range values.Names() {
		value, _ := values.Get(name)

		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", name, err)
		}

		encoded, err := json.Marshal(value.Interface())
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", name, err)
		}

		if i > 0 {
			buf.WriteByte(',')
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(encoded)
	}

	buf.WriteByte('}')

	var out bytes.Buffer

	err := json.Indent(&out, buf.Bytes(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("indenting json: %w", err)
	}

	out.WriteByte('\n')

	return out.Bytes(), nil
}
