// Package toposort provides a stable, DFS-based topological sort used both
// for creation order (parent/child forest plus sibling chains) and for
// population order (the dependency DAG). Ties are broken by the order
// vertices are handed to Sort, so the same graph always yields the same
// sequence.
package toposort

import "weave/vgraph"

// Edges reports the vertices that must precede v in the returned order (v's
// prerequisites). Sort visits a vertex's prerequisites before the vertex
// itself, so the result lists every prerequisite ahead of its dependents.
type Edges func(v vgraph.Vertex) []vgraph.Vertex

// color follows the three-color DFS scheme used to detect cycles: a vertex
// starts white, turns grey while it is on the current DFS path, and turns
// black once every prerequisite beneath it has been fully visited.
type color int

const (
	white color = iota
	grey
	black
)

// Sort returns vertices in an order where every prerequisite (as reported by
// edges) precedes its dependents. vertices are visited in the order given,
// so the result is deterministic for a given input order. It fails with a
// *CycleError if the prerequisite relation is not acyclic.
func Sort(vertices []vgraph.Vertex, edges Edges) ([]vgraph.Vertex, error) {
	colors := make(map[vgraph.Vertex]color, len(vertices))
	sorted := make([]vgraph.Vertex, 0, len(vertices))
	var path []vgraph.Vertex

	var visit func(v vgraph.Vertex) error
	visit = func(v vgraph.Vertex) error {
		switch colors[v] {
		case black:
			return nil
		case grey:
			cycle := cycleFrom(path, v)
			return &CycleError{Cycle: cycle}
		}

		colors[v] = grey
		path = append(path, v)

		for _, dep := range edges(v) {
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		colors[v] = black
		sorted = append(sorted, v)
		return nil
	}

	for _, v := range vertices {
		if colors[v] == white {
			if err := visit(v); err != nil {
				return nil, err
			}
		}
	}

	return sorted, nil
}

// cycleFrom extracts the cycle from path, which ends at the vertex that
// closed the loop back onto repeat.
func cycleFrom(path []vgraph.Vertex, repeat vgraph.Vertex) []vgraph.Vertex {
	for i, v := range path {
		if v == repeat {
			cycle := make([]vgraph.Vertex, len(path)-i)
			copy(cycle, path[i:])
			return append(cycle, repeat)
		}
	}
	return append([]vgraph.Vertex{repeat}, repeat)
}
