package vgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave/vgraph"
)

func TestNewRootsAndParent(t *testing.T) {
	typ := vgraph.New(vgraph.KindType, new(int), "T")
	f1 := vgraph.New(vgraph.KindField, new(int), "T.f1")
	f2 := vgraph.New(vgraph.KindField, new(int), "T.f2")

	g, err := vgraph.NewGraph(
		[]vgraph.Vertex{typ, f1, f2},
		[]vgraph.Edge{{From: typ, To: f1}, {From: typ, To: f2}},
		[]vgraph.Edge{{From: f1, To: f2}},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, []vgraph.Vertex{typ}, g.Roots())

	p, err := g.ParentOf(f1)
	require.NoError(t, err)
	assert.Equal(t, typ, p)

	_, err = g.ParentOf(typ)
	require.Error(t, err)
	var gerr *vgraph.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, vgraph.ErrNoParent, gerr.Kind)

	prev, err := g.PreviousSiblingOf(f2)
	require.NoError(t, err)
	assert.Equal(t, f1, prev)

	_, err = g.PreviousSiblingOf(f1)
	require.Error(t, err)
}

func TestNewRejectsMixedKindSiblings(t *testing.T) {
	typ := vgraph.New(vgraph.KindType, new(int), "T")
	f1 := vgraph.New(vgraph.KindField, new(int), "T.f1")
	m1 := vgraph.New(vgraph.KindMethod, new(int), "T.m1")

	_, err := vgraph.NewGraph(
		[]vgraph.Vertex{typ, f1, m1},
		[]vgraph.Edge{{From: typ, To: f1}, {From: typ, To: m1}},
		[]vgraph.Edge{{From: f1, To: m1}},
		nil,
	)
	require.Error(t, err)
	var gerr *vgraph.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, vgraph.ErrInvalidGraph, gerr.Kind)
}

func TestNewRejectsEdgeOutsideVertexSet(t *testing.T) {
	typ := vgraph.New(vgraph.KindType, new(int), "T")
	stray := vgraph.New(vgraph.KindField, new(int), "stray")

	_, err := vgraph.NewGraph(
		[]vgraph.Vertex{typ},
		[]vgraph.Edge{{From: typ, To: stray}},
		nil,
		nil,
	)
	require.Error(t, err)
}

func TestDepthOfNested(t *testing.T) {
	a := vgraph.New(vgraph.KindType, new(int), "A")
	b := vgraph.New(vgraph.KindType, new(int), "A.B")
	c := vgraph.New(vgraph.KindField, new(int), "A.B.c")

	g, err := vgraph.NewGraph(
		[]vgraph.Vertex{a, b, c},
		[]vgraph.Edge{{From: a, To: b}, {From: b, To: c}},
		nil,
		nil,
	)
	require.NoError(t, err)

	d, err := g.DepthOf(c)
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	d, err = g.DepthOf(a)
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

func TestDependencyIndexing(t *testing.T) {
	m1 := vgraph.New(vgraph.KindMethod, new(int), "m1")
	m2 := vgraph.New(vgraph.KindMethod, new(int), "m2")

	g, err := vgraph.NewGraph(
		[]vgraph.Vertex{m1, m2},
		nil,
		nil,
		[]vgraph.Edge{{From: m1, To: m2}},
	)
	require.NoError(t, err)

	assert.Equal(t, []vgraph.Vertex{m2}, g.DependenciesOf(m1))
	assert.Equal(t, []vgraph.Vertex{m1}, g.DependentsOf(m2))
}
