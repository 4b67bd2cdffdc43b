package envsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvSourceSnapshotsEnvironment(t *testing.T) {
	t.Setenv("KILN_TEST_VALUE", "42")

	instance, err := NewEnvSource(context.Background(), nil)
	require.NoError(t, err)

	src, ok := instance.(*Source)
	require.True(t, ok)

	v, found := src.Lookup("KILN_TEST_VALUE")
	require.True(t, found)
	assert.Equal(t, "42", v)
}

func TestNewEnvSourcePrefixFilter(t *testing.T) {
	t.Setenv("KILN_TEST_KEEP", "yes")
	t.Setenv("OTHER_TEST_DROP", "no")

	instance, err := NewEnvSource(context.Background(), map[string]any{"prefix": "KILN_TEST_"})
	require.NoError(t, err)

	src := instance.(*Source)
	_, kept := src.Lookup("KILN_TEST_KEEP")
	assert.True(t, kept)
	_, dropped := src.Lookup("OTHER_TEST_DROP")
	assert.False(t, dropped)
}

func TestAllReturnsCopy(t *testing.T) {
	t.Setenv("KILN_TEST_COPY", "orig")

	instance, err := NewEnvSource(context.Background(), map[string]any{"prefix": "KILN_TEST_"})
	require.NoError(t, err)
	src := instance.(*Source)

	all := src.All()
	all["KILN_TEST_COPY"] = "mutated"

	v, _ := src.Lookup("KILN_TEST_COPY")
	assert.Equal(t, "orig", v)
}

func TestNewEnvSourceRejectsNonStringPrefix(t *testing.T) {
	_, err := NewEnvSource(context.Background(), map[string]any{"prefix": true})
	assert.Error(t, err)
}
