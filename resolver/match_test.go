package resolver_test

import (
	"testing"

	"github.com/0xalexb/hjarta-params/resolver"

	"github.com/stretchr/testify/assert"
)

func TestQualifiedPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		rel      string
		expected string
	}{
		{name: "root with trailing separator", root: "/root/", rel: "path/var", expected: "/root/path/var"},
		{name: "root without trailing separator", root: "/root", rel: "path/var", expected: "/root/path/var"},
		{name: "leading separator stripped once", root: "/root", rel: "/path/var", expected: "/root/path/var"},
		{name: "only one leading separator stripped", root: "/root", rel: "//path/var", expected: "/root//path/var"},
		{name: "only one trailing separator trimmed", root: "/root//", rel: "var", expected: "/root//var"},
		{name: "flat mode absolute", root: "", rel: "/path/to/variable", expected: "/path/to/variable"},
		{name: "flat mode relative", root: "", rel: "path/to/variable", expected: "/path/to/variable"},
		{name: "case is kept", root: "/Root", rel: "Var", expected: "/Root/Var"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, resolver.QualifiedPath(testCase.root, testCase.rel))
		})
	}
}

func TestCanonicalPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/a", resolver.CanonicalPath("a"))
	assert.Equal(t, "/a", resolver.CanonicalPath("/a"))
	assert.Equal(t, "//a", resolver.CanonicalPath("//a"))
	assert.Equal(t, "/", resolver.CanonicalPath(""))
}

func TestBasePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/root", resolver.BasePath("/root/"))
	assert.Equal(t, "/root", resolver.BasePath("/root"))
	assert.Empty(t, resolver.BasePath("/"))
	assert.Empty(t, resolver.BasePath(""))
}
