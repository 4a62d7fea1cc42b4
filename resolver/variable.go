package resolver

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

var (
	// ErrEmptyVariableName is returned when a variable is declared without a name.
	ErrEmptyVariableName = errors.New("variable name must not be empty")
	// ErrEmptyVariablePath is returned when a variable is declared without a path.
	ErrEmptyVariablePath = errors.New("variable path must not be empty")
	// ErrDuplicateVariable is returned when the same variable name is declared twice.
	ErrDuplicateVariable = errors.New("duplicate variable name")
	// ErrInvalidVariable is returned when a variable declaration cannot be decoded.
	ErrInvalidVariable = errors.New("invalid variable declaration")
)

// Variable declares a logical name whose value lives at Path in the parameter store.
// Default is nil when no default value was declared.
type Variable struct {
	Name    string
	Path    string
	Default *Value
}

// Var declares a variable without a default.
func Var(name, path string) Variable {
	return Variable{Name: name, Path: path, Default: nil}
}

// VarWithDefault declares a variable that falls back to def when the stored value is missing or empty.
func VarWithDefault(name, path string, def Value) Variable {
	return Variable{Name: name, Path: path, Default: &def}
}

// Variables is an ordered set of declarations. Values are handed to a Sink in this order.
type Variables []Variable

// Validate checks that every variable has a name and a path and that names are unique.
func (vars Variables) Validate() error {
	seen := make(map[string]struct{}, len(vars))

	for idx, variable := range vars {
		if variable.Name == "" {
			return fmt.Errorf("variable #%d: %w", idx, ErrEmptyVariableName)
		}

		if variable.Path == "" {
			return fmt.Errorf("variable %q: %w", variable.Name, ErrEmptyVariablePath)
		}

		if _, dup := seen[variable.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateVariable, variable.Name)
		}

		seen[variable.Name] = struct{}{}
	}

	return nil
}

// Names returns the variable names in declaration order.
func (vars Variables) Names() []string {
	names := make([]string, 0, len(vars))
	for _, variable := range vars {
		names = append(names, variable.Name)
	}

	return names
}

// UnmarshalYAML decodes a mapping of name to either a bare path or a
// [path, default] pair, keeping the order of the document.
func (vars *Variables) UnmarshalYAML(unmarshal func(any) error) error {
	var entries yaml.MapSlice

	err := unmarshal(&entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVariable, err)
	}

	decoded := make(Variables, 0, len(entries))

	for _, entry := range entries {
		name := fmt.Sprint(entry.Key)

		variable, err := decodeVariable(name, entry.Value)
		if err != nil {
			return err
		}

		decoded = append(decoded, variable)
	}

	*vars = decoded

	return nil
}

func decodeVariable(name string, raw any) (Variable, error) {
	switch declared := raw.(type) {
	case string:
		return Var(name, declared), nil
	case []any:
		if len(declared) == 0 || len(declared) > 2 {
			return Variable{}, fmt.Errorf("%w: %q expects [path] or [path, default], got %d items",
				ErrInvalidVariable, name, len(declared))
		}

		path, ok := declared[0].(string)
		if !ok {
			return Variable{}, fmt.Errorf("%w: %q path must be a string", ErrInvalidVariable, name)
		}

		if len(declared) == 1 || declared[1] == nil {
			return Var(name, path), nil
		}

		return VarWithDefault(name, path, ValueOf(declared[1])), nil
	default:
		return Variable{}, fmt.Errorf("%w: %q must be a path or a [path, default] pair", ErrInvalidVariable, name)
	}
}
