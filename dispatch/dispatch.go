// Package dispatch is the Dispatcher: given a vertex, it builds the Cloner
// Kind responsible for it and hands it the target-side parent it should
// attach into.
//
// Parent lookups here are deliberately not routed through the Cloner
// Registry's gated lookup. The registry's discovery gate exists to stop a
// population-time root-import consumer from reading the table before every
// vertex in the weave has a target; it says nothing about the driver
// finding a parent it created moments ago. The driver's creation pass
// visits vertices in an order that guarantees a parent is created before
// its children (vgraph's parent/child forest, topologically sorted), so
// the dispatcher is handed a private, ungated map for that lookup instead.
package dispatch

import (
	"fmt"

	"weave/cloners"
	"weave/ilmodel"
	"weave/vgraph"
)

// Dispatcher builds a Cloner for a vertex.
type Dispatcher struct {
	Graph   *vgraph.Graph
	Created map[vgraph.Vertex]any
}

// ClonerFor returns the Cloner Kind responsible for v.
func (d *Dispatcher) ClonerFor(v vgraph.Vertex) (cloners.Cloner, error) {
	parentVertex, hasParent := d.Graph.TryParentOf(v)

	var parentTarget any
	if hasParent {
		pt, ok := d.Created[parentVertex]
		if !ok {
			return nil, fmt.Errorf("dispatch: parent of %q has not been created yet", v.Name())
		}
		parentTarget = pt
	}

	switch v.Kind {
	case vgraph.KindType:
		t := v.Object.(*ilmodel.TypeDef)
		if !hasParent {
			// The weave root itself is handled by the driver directly
			// (cloners.RootCloner), since it names a pre-existing target
			// type rather than one the dispatcher can allocate.
			return nil, fmt.Errorf("dispatch: type vertex %q has no parent and is not the weave root", v.Name())
		}
		return &cloners.TypeCloner{Source: t, ParentTarget: parentTarget.(*ilmodel.TypeDef)}, nil

	case vgraph.KindGenericParameter:
		gp := v.Object.(*ilmodel.GenericParamDef)
		if !hasParent {
			return nil, fmt.Errorf("dispatch: generic parameter %q has no owner", v.Name())
		}
		return &cloners.GenericParameterCloner{Source: gp, Owner: parentTarget}, nil

	case vgraph.KindField:
		f := v.Object.(*ilmodel.FieldDef)
		return &cloners.FieldCloner{Source: f, ParentTarget: parentTarget.(*ilmodel.TypeDef)}, nil

	case vgraph.KindMethod:
		m := v.Object.(*ilmodel.MethodDef)
		return &cloners.MethodSignatureCloner{Source: m, ParentTarget: parentTarget.(*ilmodel.TypeDef)}, nil

	case vgraph.KindParameter:
		p := v.Object.(*ilmodel.ParamDef)
		return &cloners.ParameterCloner{Source: p, ParentTarget: parentTarget.(*ilmodel.MethodDef)}, nil

	case vgraph.KindVariable:
		vr := v.Object.(*ilmodel.VariableDef)
		return &cloners.VariableCloner{Source: vr, ParentTarget: parentTarget.(*ilmodel.MethodDef)}, nil

	case vgraph.KindInstruction:
		instr := v.Object.(*ilmodel.Instr)
		return &cloners.InstructionCloner{Source: instr, ParentTarget: parentTarget.(*ilmodel.MethodDef)}, nil

	case vgraph.KindExceptionHandler:
		eh := v.Object.(*ilmodel.ExceptionHandler)
		return &cloners.ExceptionHandlerCloner{Source: eh, ParentTarget: parentTarget.(*ilmodel.MethodDef)}, nil

	case vgraph.KindProperty:
		p := v.Object.(*ilmodel.PropertyDef)
		return &cloners.PropertyCloner{Source: p, ParentTarget: parentTarget.(*ilmodel.TypeDef)}, nil

	case vgraph.KindEvent:
		e := v.Object.(*ilmodel.EventDef)
		return &cloners.EventCloner{Source: e, ParentTarget: parentTarget.(*ilmodel.TypeDef)}, nil

	default:
		return nil, fmt.Errorf("dispatch: unhandled vertex kind %s", v.Kind)
	}
}
