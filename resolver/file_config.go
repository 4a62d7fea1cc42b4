package resolver

import (
	"errors"
	"fmt"
)

// ErrNoVariables is returned when a variables file declares nothing to resolve.
var ErrNoVariables = errors.New("no variables declared")

// FileConfig is the resolution section of a variables file:
//
//	params:
//	  root_path: /project/
//	  raise_on_parameter_not_found: false
//	  variables:
//	    db_pass: /path/to/variable
//	    flag: [/flag, "default"]
//
// It is meant to be loaded with config.Provider.
type FileConfig struct {
	RootPath                 string    `yaml:"root_path"`
	RaiseOnParameterNotFound bool      `yaml:"raise_on_parameter_not_found"`
	Variables                Variables `yaml:"variables"`
}

// Validate checks the declared variables.
func (c *FileConfig) Validate() error {
	if len(c.Variables) == 0 {
		return ErrNoVariables
	}

	err := c.Variables.Validate()
	if err != nil {
		return fmt.Errorf("variables: %w", err)
	}

	return nil
}

// ResolverConfig turns the file section into a Config. The client is left for the caller.
func (c *FileConfig) ResolverConfig() Config {
	return Config{
		Client:                   nil,
		ClientFactory:            nil,
		RootPath:                 c.RootPath,
		RaiseOnParameterNotFound: c.RaiseOnParameterNotFound,
		Variables:                append(Variables(nil), c.Variables...),
		Logger:                   nil,
		Metrics:                  nil,
	}
}
