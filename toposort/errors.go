package toposort

import (
	"strings"

	"weave/vgraph"
)

// CycleError reports a prerequisite cycle discovered during Sort. Cycle
// lists the offending vertices in traversal order, starting and ending on
// the vertex that closed the loop.
type CycleError struct {
	Cycle []vgraph.Vertex
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Cycle))
	for i, v := range e.Cycle {
		names[i] = v.Name()
	}
	return "CyclicDependency: " + strings.Join(names, " -> ")
}
