// Package cloners implements the Cloner Kinds: one cloner per vgraph.Kind,
// each following the same two-phase contract the driver relies on. Create
// allocates the target-side shell and links it into its already-created
// parent (so later Create calls for its own children have somewhere to
// attach); Populate fills in everything that may reference another vertex,
// which is only safe once every shell in the weave has been created.
package cloners

import (
	"weave/registry"
	"weave/rootimport"
	"weave/vgraph"
)

// Context is threaded through every cloner call. Vertices maps a source
// ilmodel object to the vgraph.Vertex the driver assigned it, so a cloner
// can ask the registry what another vertex became.
type Context struct {
	Importer *rootimport.Importer
	Registry *registry.Registry
	Vertices map[any]vgraph.Vertex
}

// TargetFor looks up the already-cloned target for a source object that has
// its own vertex in the graph (a parameter, a variable, an instruction, a
// nested type, and so on). It returns ok=false if src has no vertex at all,
// which is never itself an error: the caller decides whether that is
// expected.
func (c *Context) TargetFor(src any) (any, bool, error) {
	v, ok := c.Vertices[src]
	if !ok {
		return nil, false, nil
	}
	target, found, err := c.Registry.TryGetTargetFor(v)
	if err != nil {
		return nil, false, err
	}
	return target, found, nil
}

// Cloner is the two-phase contract every Cloner Kind implements. Create
// must not read anything off any other vertex's target beyond its own
// already-materialized parent; Populate may freely resolve references
// anywhere else in the weave since creation has finished for every vertex
// by the time population begins.
type Cloner interface {
	Create(ctx *Context) (any, error)
	Populate(ctx *Context, target any) error
}
