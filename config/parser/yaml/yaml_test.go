package yaml

import (
	"testing"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const variablesFile = `
params:
  root_path: /project/
  variables:
    db_pass: db/password
    flag: [/flag, true]
store:
  kind: nats
  nats:
    url: nats://localhost:4222
    bucket: params
`

func TestParser_Parse_ParamsSection(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result resolver.FileConfig

	err := parser.Parse([]byte(variablesFile), &result, "params")

	require.NoError(t, err)
	assert.Equal(t, "/project/", result.RootPath)
	assert.Equal(t, []string{"db_pass", "flag"}, result.Variables.Names())
	assert.Equal(t, resolver.VarWithDefault("flag", "/flag", resolver.Bool(true)), result.Variables[1])
}

func TestParser_Parse_EmptyPath(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result struct {
		Params resolver.FileConfig `yaml:"params"`
		Store  struct {
			Kind string `yaml:"kind"`
		} `yaml:"store"`
	}

	err := parser.Parse([]byte(variablesFile), &result, "")

	require.NoError(t, err)
	assert.Equal(t, "nats", result.Store.Kind)
	assert.Len(t, result.Params.Variables, 2)
}

func TestParser_Parse_MultiLevelPath(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result struct {
		URL    string `yaml:"url"`
		Bucket string `yaml:"bucket"`
	}

	err := parser.Parse([]byte(variablesFile), &result, "store:nats")

	require.NoError(t, err)
	assert.Equal(t, "nats://localhost:4222", result.URL)
	assert.Equal(t, "params", result.Bucket)
}

func TestParser_Parse_ScalarValue(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var rootPath string

	err := parser.Parse([]byte(variablesFile), &rootPath, "params:root_path")

	require.NoError(t, err)
	assert.Equal(t, "/project/", rootPath)
}

func TestParser_Parse_MissingSection(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result struct {
		Region string `yaml:"region"`
	}

	err := parser.Parse([]byte(variablesFile), &result, "store:ssm")

	require.Error(t, err)
	require.ErrorIs(t, err, ErrPathNotFound)
	require.ErrorIs(t, err, config.ErrSectionNotFound)
	assert.Contains(t, err.Error(), "store:ssm")
}

func TestParser_Parse_NonMappingIntermediate(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result struct{}

	err := parser.Parse([]byte(variablesFile), &result, "store:kind:nested")

	require.Error(t, err)
}

func TestParser_Parse_InvalidVariables(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
params:
  variables:
    broken: [/a, b, c]
`)

	var result resolver.FileConfig

	err := parser.Parse(data, &result, "params")

	require.Error(t, err)
}

func TestParser_Parse_EmptyData(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result struct{}

	err := parser.Parse([]byte{}, &result, "")

	require.ErrorIs(t, err, ErrEmptyData)
}

func TestParser_Parse_InvalidYAML(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
invalid: yaml: content: [
`)

	var result struct{}

	err := parser.Parse(data, &result, "")

	require.Error(t, err)
}

func TestConvertToYAMLPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single key", input: "params", expected: "$.params"},
		{name: "two level path", input: "store:nats", expected: "$.store.nats"},
		{name: "three level path", input: "params:variables:db_pass", expected: "$.params.variables.db_pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, convertToYAMLPath(tt.input))
		})
	}
}
