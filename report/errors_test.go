package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave/registry"
	"weave/report"
	"weave/rootimport"
	"weave/vgraph"
)

func TestWrapClassifiesRegistryError(t *testing.T) {
	reg := registry.New()
	err := reg.Add(vgraph.New(vgraph.KindType, new(int), "T"), "x")
	require.NoError(t, err)

	_, _, lookupErr := reg.TryGetTargetFor(vgraph.New(vgraph.KindType, new(int), "T"))
	require.Error(t, lookupErr)

	wrapped := report.Wrap(lookupErr)
	var werr *report.WeaveError
	require.ErrorAs(t, wrapped, &werr)
	assert.Equal(t, report.DoubleInvoke, werr.Kind)
}

func TestWrapClassifiesRootImportError(t *testing.T) {
	rerr := &rootimport.Error{Kind: rootimport.ErrSignatureMatchMissing, FQN: "Foo::Bar()"}
	wrapped := report.Wrap(rerr)

	var werr *report.WeaveError
	require.ErrorAs(t, wrapped, &werr)
	assert.Equal(t, report.SignatureMatchMissing, werr.Kind)
	assert.Equal(t, "Foo::Bar()", werr.FQN)
}

func TestWrapPassesThroughAlreadyWrapped(t *testing.T) {
	original := &report.WeaveError{Kind: report.InvalidGraph, Cause: assert.AnError}
	wrapped := report.Wrap(original)
	assert.Same(t, original, wrapped)
}
