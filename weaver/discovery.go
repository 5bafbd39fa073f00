package weaver

import (
	"weave/ilmodel"
	"weave/vgraph"
)

// discoveredGraph is the raw material vgraph.NewGraph needs, plus the
// object-to-vertex index the rest of the driver relies on.
type discoveredGraph struct {
	vertices    []vgraph.Vertex
	parentChild []vgraph.Edge
	sibling     []vgraph.Edge
	dependency  []vgraph.Edge
	objToVertex map[any]vgraph.Vertex
}

// discoverer walks a source root type and records every vertex and edge
// the driver needs. Vertices are recorded in a stable, deterministic order
// (declaration order at every level), which is what makes the eventual
// creation order reproducible.
type discoverer struct {
	g discoveredGraph

	// skipMark is the skip-constructor-mark attribute name from
	// configuration. A member carrying a custom attribute with this name
	// is excluded from the graph entirely, along with everything nested
	// under it.
	skipMark string
}

func discover(root *ilmodel.TypeDef, skipMark string) *discoveredGraph {
	d := &discoverer{
		g:        discoveredGraph{objToVertex: make(map[any]vgraph.Vertex)},
		skipMark: skipMark,
	}
	d.walkType(root, vgraph.Vertex{})
	return &d.g
}

func (d *discoverer) isMarkedSkip(attrs []*ilmodel.CustomAttribute) bool {
	if d.skipMark == "" {
		return false
	}
	for _, a := range attrs {
		if ilmodel.AttrTypeName(a.AttrType) == d.skipMark {
			return true
		}
	}
	return false
}

func (d *discoverer) addVertex(kind vgraph.Kind, object any, name string) vgraph.Vertex {
	v := vgraph.New(kind, object, name)
	d.g.vertices = append(d.g.vertices, v)
	d.g.objToVertex[object] = v
	return v
}

func (d *discoverer) chain(parent vgraph.Vertex, hasParent bool, siblings []vgraph.Vertex, v vgraph.Vertex) {
	if hasParent {
		d.g.parentChild = append(d.g.parentChild, vgraph.Edge{From: parent, To: v})
	}
	if len(siblings) > 0 {
		d.g.sibling = append(d.g.sibling, vgraph.Edge{From: siblings[len(siblings)-1], To: v})
	}
}

func (d *discoverer) walkType(t *ilmodel.TypeDef, parent vgraph.Vertex) vgraph.Vertex {
	tv := d.addVertex(vgraph.KindType, t, t.FullName())

	var generics, fields, methods, props, events, nested []vgraph.Vertex

	for _, gp := range t.GenericParams {
		v := d.addVertex(vgraph.KindGenericParameter, gp, t.FullName()+"!"+gp.Name)
		d.chain(tv, true, generics, v)
		generics = append(generics, v)
	}

	for _, f := range t.Fields {
		if d.isMarkedSkip(f.CustomAttrs) {
			continue
		}
		v := d.addVertex(vgraph.KindField, f, t.FullName()+"::"+f.Name)
		d.chain(tv, true, fields, v)
		fields = append(fields, v)
	}

	for _, m := range t.Methods {
		if d.isMarkedSkip(m.CustomAttrs) {
			continue
		}
		mv := d.walkMethod(m, tv)
		d.chain(tv, true, methods, mv)
		methods = append(methods, mv)
	}

	for _, p := range t.Properties {
		if d.isMarkedSkip(p.CustomAttrs) {
			continue
		}
		v := d.addVertex(vgraph.KindProperty, p, t.FullName()+"::"+p.Name)
		d.chain(tv, true, props, v)
		props = append(props, v)

		if p.Getter != nil {
			if getterVertex, ok := d.g.objToVertex[p.Getter]; ok {
				d.g.dependency = append(d.g.dependency, vgraph.Edge{From: v, To: getterVertex})
			}
		}
		if p.Setter != nil {
			if setterVertex, ok := d.g.objToVertex[p.Setter]; ok {
				d.g.dependency = append(d.g.dependency, vgraph.Edge{From: v, To: setterVertex})
			}
		}
	}

	for _, e := range t.Events {
		if d.isMarkedSkip(e.CustomAttrs) {
			continue
		}
		v := d.addVertex(vgraph.KindEvent, e, t.FullName()+"::"+e.Name)
		d.chain(tv, true, events, v)
		events = append(events, v)

		if e.AddMethod != nil {
			if addVertex, ok := d.g.objToVertex[e.AddMethod]; ok {
				d.g.dependency = append(d.g.dependency, vgraph.Edge{From: v, To: addVertex})
			}
		}
		if e.RemoveMethod != nil {
			if removeVertex, ok := d.g.objToVertex[e.RemoveMethod]; ok {
				d.g.dependency = append(d.g.dependency, vgraph.Edge{From: v, To: removeVertex})
			}
		}
	}

	for _, n := range t.NestedTypes {
		if d.isMarkedSkip(n.CustomAttrs) {
			continue
		}
		v := d.walkType(n, tv)
		d.chain(tv, true, nested, v)
		nested = append(nested, v)
	}

	return tv
}

func (d *discoverer) walkMethod(m *ilmodel.MethodDef, parent vgraph.Vertex) vgraph.Vertex {
	mv := d.addVertex(vgraph.KindMethod, m, m.DeclaringType.FullName()+"::"+m.Name)

	var generics, params, vars, instrs, handlers []vgraph.Vertex

	for _, gp := range m.GenericParams {
		v := d.addVertex(vgraph.KindGenericParameter, gp, mv.Name()+"!"+gp.Name)
		d.chain(mv, true, generics, v)
		generics = append(generics, v)
	}

	for _, p := range m.Params {
		v := d.addVertex(vgraph.KindParameter, p, mv.Name()+"#"+p.Name)
		d.chain(mv, true, params, v)
		params = append(params, v)
	}

	if m.Body != nil {
		for _, vr := range m.Body.Variables {
			v := d.addVertex(vgraph.KindVariable, vr, mv.Name()+"$local")
			d.chain(mv, true, vars, v)
			vars = append(vars, v)
		}

		for _, instr := range m.Body.Instrs {
			v := d.addVertex(vgraph.KindInstruction, instr, mv.Name()+"$il")
			d.chain(mv, true, instrs, v)
			instrs = append(instrs, v)
		}

		for _, h := range m.Body.ExceptionHandlers {
			v := d.addVertex(vgraph.KindExceptionHandler, h, mv.Name()+"$try")
			d.chain(mv, true, handlers, v)
			handlers = append(handlers, v)

			// A handler's boundaries reference instructions that must
			// already be populated with their (possibly branch-rewritten)
			// shape before the handler resolves them.
			for _, instr := range []*ilmodel.Instr{h.TryStart, h.TryEnd, h.HandlerStart, h.HandlerEnd, h.FilterStart} {
				if instr == nil {
					continue
				}
				if instrVertex, ok := d.g.objToVertex[instr]; ok {
					d.g.dependency = append(d.g.dependency, vgraph.Edge{From: v, To: instrVertex})
				}
			}
		}
	}

	return mv
}
