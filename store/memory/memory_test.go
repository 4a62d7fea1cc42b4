package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/0xalexb/hjarta-params/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleParams() []resolver.Parameter {
	return []resolver.Parameter{
		{Path: "/app/db/host", Value: resolver.String("localhost")},
		{Path: "/app/db/port", Value: resolver.Int(5432)},
		{Path: "/app/debug", Value: resolver.Bool(true)},
		{Path: "/application/name", Value: resolver.String("other")},
	}
}

func TestStore_GetParameter(t *testing.T) {
	t.Parallel()

	store := New(sampleParams())

	param, err := store.GetParameter(context.Background(), "/app/db/port", true)
	require.NoError(t, err)
	assert.Equal(t, resolver.Int(5432), param.Value)

	_, err = store.GetParameter(context.Background(), "/app/nope", true)
	require.ErrorIs(t, err, resolver.ErrParameterNotFound)

	var storeErr *resolver.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "ParameterNotFound", storeErr.Class)

	get, list := store.Calls()
	assert.Equal(t, 2, get)
	assert.Zero(t, list)
}

func TestStore_GetParametersByPath_Recursive(t *testing.T) {
	t.Parallel()

	store := New(sampleParams(), WithPageSize(2))

	first, err := store.GetParametersByPath(context.Background(), resolver.PathQuery{Path: "/app", Recursive: true})
	require.NoError(t, err)
	require.Len(t, first.Parameters, 2)
	assert.Equal(t, "2", first.NextToken)

	second, err := store.GetParametersByPath(context.Background(),
		resolver.PathQuery{Path: "/app/", Recursive: true, NextToken: first.NextToken})
	require.NoError(t, err)
	require.Len(t, second.Parameters, 1)
	assert.Equal(t, "/app/debug", second.Parameters[0].Path)
	assert.Empty(t, second.NextToken)
}

func TestStore_GetParametersByPath_NonRecursive(t *testing.T) {
	t.Parallel()

	store := New(sampleParams())

	page, err := store.GetParametersByPath(context.Background(), resolver.PathQuery{Path: "/app", Recursive: false})
	require.NoError(t, err)
	require.Len(t, page.Parameters, 1)
	assert.Equal(t, "/app/debug", page.Parameters[0].Path)
}

func TestStore_GetParametersByPath_InvalidToken(t *testing.T) {
	t.Parallel()

	store := New(sampleParams())

	for _, token := range []string{"abc", "-1", "99"} {
		_, err := store.GetParametersByPath(context.Background(), resolver.PathQuery{Path: "/app", NextToken: token})
		require.ErrorIs(t, err, ErrInvalidNextToken, token)
	}
}

func TestStore_FailWith(t *testing.T) {
	t.Parallel()

	store := New(sampleParams())
	failure := errors.New("boom")
	store.FailWith(failure)

	_, err := store.GetParameter(context.Background(), "/app/debug", true)
	require.ErrorIs(t, err, failure)

	_, err = store.GetParametersByPath(context.Background(), resolver.PathQuery{Path: "/app"})
	require.ErrorIs(t, err, failure)

	store.FailWith(nil)

	_, err = store.GetParameter(context.Background(), "/app/debug", true)
	require.NoError(t, err)
}

func TestStore_PutKeepsDuplicates(t *testing.T) {
	t.Parallel()

	store := New(nil)
	store.Put("/a", resolver.String("first"))
	store.Put("/a", resolver.String("second"))

	param, err := store.GetParameter(context.Background(), "/a", false)
	require.NoError(t, err)
	assert.Equal(t, resolver.String("first"), param.Value)

	page, err := store.GetParametersByPath(context.Background(), resolver.PathQuery{Path: "/", Recursive: true})
	require.NoError(t, err)
	assert.Len(t, page.Parameters, 2)
}

func TestBelow_RootPath(t *testing.T) {
	t.Parallel()

	assert.Len(t, Below(sampleParams(), "/", true), 4)
	assert.Len(t, Below(sampleParams(), "/app", true), 3, "siblings sharing a prefix are excluded")
}
