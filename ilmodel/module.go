// Package ilmodel is the typed object model of metadata and IL that the
// weaver operates on: modules, types, members, and instructions. It stands
// in for an assembly-reading library: there is no such library reachable in
// this project's dependency set, so the model is owned here instead.
package ilmodel

// Module is an in-memory stand-in for a compiled assembly: a named
// collection of types plus the set of other modules it may reference.
type Module struct {
	Name string

	// Types is every top-level type declared in the module, indexed by
	// fully qualified name for O(1) lookup by name (LookupType).
	Types map[string]*TypeDef

	// References is the set of other module names this module's metadata
	// may point into. NewModule creates it empty; nothing in this
	// repository adds to it, including root-import.
	References map[string]struct{}
}

// NewModule creates an empty module ready to receive cloned types.
func NewModule(name string) *Module {
	return &Module{
		Name:       name,
		Types:      make(map[string]*TypeDef),
		References: make(map[string]struct{}),
	}
}

// AddType registers a top-level type under its full name.
func (m *Module) AddType(t *TypeDef) {
	m.Types[t.FullName()] = t
	t.Module = m
}

// LookupType finds a top-level type by full name.
func (m *Module) LookupType(fullName string) (*TypeDef, bool) {
	t, ok := m.Types[fullName]
	return t, ok
}

// -----------------------------------------------------------------------------

// TypeDef is a declared class, struct, interface, or enum.
type TypeDef struct {
	Module *Module

	Name      string
	Namespace string
	Attrs     TypeAttrs

	// DeclaringType is set for nested types; nil for top-level types.
	DeclaringType *TypeDef

	BaseType   *TypeRef
	Interfaces []*TypeRef

	GenericParams []*GenericParamDef
	NestedTypes   []*TypeDef
	Fields        []*FieldDef
	Methods       []*MethodDef
	Properties    []*PropertyDef
	Events        []*EventDef
	CustomAttrs   []*CustomAttribute

	// Layout mirrors a metadata layout classification: auto, sequential, explicit.
	Layout LayoutKind
}

// TypeAttrs mirrors the handful of type-level attribute flags the weaver
// cares about (visibility, abstractness, sealed-ness).
type TypeAttrs struct {
	Public   bool
	Abstract bool
	Sealed   bool
	Nested   bool
}

// LayoutKind enumerates type layout classifications.
type LayoutKind int

const (
	LayoutAuto LayoutKind = iota
	LayoutSequential
	LayoutExplicit
)

// FullName returns the type's fully qualified name: namespace-qualified for
// top-level types, and "Declaring+Nested" for nested types (the ECMA-335
// convention), which is also the string form the substitution oracle
// operates over.
func (t *TypeDef) FullName() string {
	var base string
	if t.Namespace == "" {
		base = t.Name
	} else {
		base = t.Namespace + "." + t.Name
	}

	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "+" + base
	}

	return base
}

// AddNestedType attaches a child type and marks it nested.
func (t *TypeDef) AddNestedType(child *TypeDef) {
	child.DeclaringType = t
	child.Attrs.Nested = true
	t.NestedTypes = append(t.NestedTypes, child)
}
