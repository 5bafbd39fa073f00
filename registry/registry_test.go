package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave/registry"
	"weave/vgraph"
)

func TestLookupForbiddenWhileOpen(t *testing.T) {
	r := registry.New()
	src := vgraph.New(vgraph.KindType, new(int), "T")

	require.NoError(t, r.Add(src, "target-T"))

	_, _, err := r.TryGetTargetFor(src)
	require.Error(t, err)
	var rerr *registry.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, registry.ErrDoubleInvoke, rerr.Kind)
}

func TestLookupAfterClose(t *testing.T) {
	r := registry.New()
	src := vgraph.New(vgraph.KindType, new(int), "T")

	require.NoError(t, r.Add(src, "target-T"))
	require.NoError(t, r.SetAllClonersAdded())

	target, ok, err := r.TryGetTargetFor(src)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "target-T", target)
}

func TestAddAfterCloseFails(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.SetAllClonersAdded())

	src := vgraph.New(vgraph.KindType, new(int), "T")
	err := r.Add(src, "target-T")
	require.Error(t, err)
}

func TestSetAllClonersAddedIsOneShot(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.SetAllClonersAdded())
	require.Error(t, r.SetAllClonersAdded())
}

func TestMissingTargetLooksUpFalse(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.SetAllClonersAdded())

	_, ok, err := r.TryGetTargetFor(vgraph.New(vgraph.KindType, new(int), "unregistered"))
	require.NoError(t, err)
	assert.False(t, ok)
}
