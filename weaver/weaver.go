// Package weaver is the Cloning Driver: it discovers the graph rooted at a
// mixin source type, creates every target-side shell in parent/child and
// sibling order, closes the cloner registry, then populates every shell in
// dependency order.
package weaver

import (
	"fmt"

	"weave/cloners"
	"weave/dispatch"
	"weave/ilmodel"
	"weave/registry"
	"weave/report"
	"weave/rootimport"
	"weave/toposort"
	"weave/vgraph"
)

// Options names the mixin source and the pre-existing host it is woven
// into.
type Options struct {
	SourceModule *ilmodel.Module
	TargetModule *ilmodel.Module

	// SourceTypeFQN is the fully qualified name of the type in
	// SourceModule whose members are cloned.
	SourceTypeFQN string

	// TargetTypeFQN is the fully qualified name of the pre-existing type
	// in TargetModule that receives the cloned members. It is never
	// itself created or replaced; only child members and the source root's
	// filtered custom attributes are added to it.
	TargetTypeFQN string

	// SkipMark, when non-empty, is the fully qualified name of a custom
	// attribute that excludes any member carrying it from the clone.
	SkipMark string

	// FilterAttrs excludes the named custom attributes from the ones
	// propagated onto the target root; every other attribute on the
	// source root is still cloned onto the target.
	FilterAttrs []string
}

// Result reports what a successful weave produced.
type Result struct {
	SourceRoot *ilmodel.TypeDef
	TargetRoot *ilmodel.TypeDef

	// VertexCount is the number of source entities discovered and cloned.
	VertexCount int
}

// Weave runs the full two-pass clone described in the package doc. A
// failure that report.Wrap classifies is returned as a *report.WeaveError;
// a missing source or target root type, or an error report.Wrap does not
// recognize (such as a dispatcher error), is returned as a plain error.
func Weave(opts Options, reporter *report.Reporter) (*Result, error) {
	sourceRoot, ok := opts.SourceModule.LookupType(opts.SourceTypeFQN)
	if !ok {
		return nil, fmt.Errorf("weaver: source type %q not found in module %q", opts.SourceTypeFQN, opts.SourceModule.Name)
	}
	targetRoot, ok := opts.TargetModule.LookupType(opts.TargetTypeFQN)
	if !ok {
		return nil, fmt.Errorf("weaver: target type %q not found in module %q", opts.TargetTypeFQN, opts.TargetModule.Name)
	}

	reporter.Info("discovering graph rooted at %s", sourceRoot.FullName())
	dg := discover(sourceRoot, opts.SkipMark)

	graph, err := vgraph.NewGraph(dg.vertices, dg.parentChild, dg.sibling, dg.dependency)
	if err != nil {
		return nil, wrapAndReport(reporter, err)
	}
	reporter.Info("discovered %d vertices", len(dg.vertices))

	creationOrder, err := toposort.Sort(dg.vertices, func(v vgraph.Vertex) []vgraph.Vertex {
		var prereqs []vgraph.Vertex
		if p, ok := graph.TryParentOf(v); ok {
			prereqs = append(prereqs, p)
		}
		if s, ok := graph.TryPreviousSiblingOf(v); ok {
			prereqs = append(prereqs, s)
		}
		return prereqs
	})
	if err != nil {
		return nil, wrapAndReport(reporter, err)
	}

	reg := registry.New()
	created := make(map[vgraph.Vertex]any, len(dg.vertices))

	disp := &dispatch.Dispatcher{
		Graph:   graph,
		Created: created,
	}

	importer := rootimport.New(sourceRoot, targetRoot, reg, dg.objToVertex)
	ctx := &cloners.Context{Importer: importer, Registry: reg, Vertices: dg.objToVertex}

	clonerOf := make(map[vgraph.Vertex]cloners.Cloner, len(dg.vertices))

	reporter.Info("creation pass: %d vertices", len(creationOrder))
	for _, v := range creationOrder {
		var c cloners.Cloner
		if v.Kind == vgraph.KindType && v.Object == sourceRoot {
			c = &cloners.RootCloner{Source: sourceRoot, Target: targetRoot, FilterAttrs: opts.FilterAttrs}
		} else {
			c, err = disp.ClonerFor(v)
			if err != nil {
				return nil, wrapAndReport(reporter, err)
			}
		}

		target, err := c.Create(ctx)
		if err != nil {
			return nil, wrapAndReport(reporter, err)
		}

		created[v] = target
		clonerOf[v] = c
		if err := reg.Add(v, target); err != nil {
			return nil, wrapAndReport(reporter, err)
		}
	}

	if err := reg.SetAllClonersAdded(); err != nil {
		return nil, wrapAndReport(reporter, err)
	}

	populationOrder, err := toposort.Sort(dg.vertices, graph.DependenciesOf)
	if err != nil {
		return nil, wrapAndReport(reporter, err)
	}

	reporter.Info("population pass: %d vertices", len(populationOrder))
	for _, v := range populationOrder {
		c := clonerOf[v]
		if err := c.Populate(ctx, created[v]); err != nil {
			return nil, wrapAndReport(reporter, err)
		}
	}

	reporter.Info("weave complete: %s -> %s", sourceRoot.FullName(), targetRoot.FullName())

	return &Result{
		SourceRoot:  sourceRoot,
		TargetRoot:  targetRoot,
		VertexCount: len(dg.vertices),
	}, nil
}

func wrapAndReport(reporter *report.Reporter, err error) error {
	wrapped := report.Wrap(err)
	if werr, ok := wrapped.(*report.WeaveError); ok {
		reporter.Fatal(werr)
	}
	return wrapped
}
