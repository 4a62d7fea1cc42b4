package resolver_test

import (
	"testing"

	"github.com/0xalexb/hjarta-params/resolver"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariables_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
root_path: /project/
raise_on_parameter_not_found: true
variables:
  db_pass: /path/to/variable
  flag: [/flag, false]
  region: [region, "eu-west-1"]
  port: [/port, 5432]
  plain: [/plain]
  nulled: [/nulled, null]
`)

	var cfg resolver.FileConfig

	err := yaml.Unmarshal(data, &cfg)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/project/", cfg.RootPath)
	assert.True(t, cfg.RaiseOnParameterNotFound)
	assert.Equal(t, []string{"db_pass", "flag", "region", "port", "plain", "nulled"}, cfg.Variables.Names())

	assert.Equal(t, resolver.Var("db_pass", "/path/to/variable"), cfg.Variables[0])
	assert.Equal(t, resolver.VarWithDefault("flag", "/flag", resolver.Bool(false)), cfg.Variables[1])
	assert.Equal(t, resolver.VarWithDefault("region", "region", resolver.String("eu-west-1")), cfg.Variables[2])
	assert.Equal(t, resolver.KindNumber, cfg.Variables[3].Default.Kind())
	assert.Nil(t, cfg.Variables[4].Default)
	assert.Nil(t, cfg.Variables[5].Default, "a null default means no default")

	resolverCfg := cfg.ResolverConfig()
	assert.Equal(t, cfg.RootPath, resolverCfg.RootPath)
	assert.Equal(t, cfg.Variables, resolverCfg.Variables)
}

func TestVariables_UnmarshalYAML_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data string
	}{
		{name: "too many items", data: "variables:\n  a: [/a, b, c]\n"},
		{name: "empty pair", data: "variables:\n  a: []\n"},
		{name: "path not a string", data: "variables:\n  a: [1, b]\n"},
		{name: "mapping declaration", data: "variables:\n  a:\n    path: /a\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var cfg resolver.FileConfig

			err := yaml.Unmarshal([]byte(testCase.data), &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), resolver.ErrInvalidVariable.Error())
		})
	}
}

func TestFileConfig_Validate(t *testing.T) {
	t.Parallel()

	empty := resolver.FileConfig{}
	require.ErrorIs(t, empty.Validate(), resolver.ErrNoVariables)

	dup := resolver.FileConfig{Variables: resolver.Variables{
		resolver.Var("a", "/a"),
		resolver.Var("a", "/b"),
	}}
	require.ErrorIs(t, dup.Validate(), resolver.ErrDuplicateVariable)
}
