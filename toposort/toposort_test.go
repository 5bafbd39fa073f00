package toposort_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave/toposort"
	"weave/vgraph"
)

func indexOf(vs []vgraph.Vertex, v vgraph.Vertex) int {
	for i, x := range vs {
		if x == v {
			return i
		}
	}
	return -1
}

func TestSortOrdersPrerequisitesFirst(t *testing.T) {
	a := vgraph.New(vgraph.KindMethod, new(int), "a")
	b := vgraph.New(vgraph.KindMethod, new(int), "b")
	c := vgraph.New(vgraph.KindMethod, new(int), "c")

	// a depends on b, b depends on c.
	deps := map[vgraph.Vertex][]vgraph.Vertex{a: {b}, b: {c}}

	sorted, err := toposort.Sort([]vgraph.Vertex{a, b, c}, func(v vgraph.Vertex) []vgraph.Vertex {
		return deps[v]
	})
	require.NoError(t, err)

	assert.Less(t, indexOf(sorted, c), indexOf(sorted, b))
	assert.Less(t, indexOf(sorted, b), indexOf(sorted, a))
}

func TestSortDetectsCycle(t *testing.T) {
	a := vgraph.New(vgraph.KindMethod, new(int), "a")
	b := vgraph.New(vgraph.KindMethod, new(int), "b")

	deps := map[vgraph.Vertex][]vgraph.Vertex{a: {b}, b: {a}}

	_, err := toposort.Sort([]vgraph.Vertex{a, b}, func(v vgraph.Vertex) []vgraph.Vertex {
		return deps[v]
	})
	require.Error(t, err)
	var cerr *toposort.CycleError
	require.ErrorAs(t, err, &cerr)
	assert.NotEmpty(t, cerr.Cycle)
}

func TestSortIsStableUnderTies(t *testing.T) {
	a := vgraph.New(vgraph.KindField, new(int), "a")
	b := vgraph.New(vgraph.KindField, new(int), "b")
	c := vgraph.New(vgraph.KindField, new(int), "c")

	noDeps := func(vgraph.Vertex) []vgraph.Vertex { return nil }

	sorted, err := toposort.Sort([]vgraph.Vertex{a, b, c}, noDeps)
	require.NoError(t, err)
	assert.Equal(t, []vgraph.Vertex{a, b, c}, sorted)
}
