// Package vgraph is the immutable directed graph of source entities the
// cloning driver discovers while walking a mixin source root: vertices
// tagged by kind, plus three edge sets (parent/child, sibling, dependency)
// and the derived indices the rest of the weaver relies on.
package vgraph

// Kind tags the entity a Vertex stands for. The set is closed: every
// dispatcher and cloner switches over it exhaustively.
type Kind int

const (
	KindType Kind = iota
	KindGenericParameter
	KindField
	KindMethod
	KindParameter
	KindVariable
	KindInstruction
	KindExceptionHandler
	KindProperty
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "Type"
	case KindGenericParameter:
		return "GenericParameter"
	case KindField:
		return "Field"
	case KindMethod:
		return "Method"
	case KindParameter:
		return "Parameter"
	case KindVariable:
		return "Variable"
	case KindInstruction:
		return "Instruction"
	case KindExceptionHandler:
		return "ExceptionHandler"
	case KindProperty:
		return "Property"
	case KindEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// Vertex is an opaque handle to a source entity: its kind plus a pointer to
// the kind-specific ilmodel object. Object carries the *T from ilmodel
// (e.g. *ilmodel.FieldDef); it is compared by identity, never by value, so
// two vertices wrapping distinct objects are never equal, even when the
// objects hold equal values.
//
// Vertex is used directly as a map key throughout this package and its
// callers, so Go's struct equality compares every field, name included.
// Callers therefore must construct at most one Vertex per (Kind, Object)
// pair with a stable name: New is always called from a single discovery
// walk that assigns each object exactly one deterministic label, so this
// holds in practice, but it is a real invariant callers must preserve, not
// a property the type enforces on its own — a second Vertex built for the
// same object with a different name would be a distinct map key and would
// silently miss every existing lookup for that object.
type Vertex struct {
	Kind   Kind
	Object any

	// name is a human-readable label used for diagnostics.
	name string
}

// New creates a vertex of the given kind wrapping the given metadata object.
func New(kind Kind, object any, name string) Vertex {
	return Vertex{Kind: kind, Object: object, name: name}
}

// Name returns the vertex's diagnostic label.
func (v Vertex) Name() string {
	return v.name
}
