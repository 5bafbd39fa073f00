package ilmodel

// TypeRefKind tags the shape of a TypeRef, matching the tagged union the
// root-import engine's structural recursion switches over (basic, array,
// generic-instance, generic-parameter, external). A mixin-mapped reference
// is not a separate kind: root-import decides per KindBasic reference,
// through the cloner registry, whether it maps to a clone.
type TypeRefKind int

const (
	// KindBasic is a direct reference to a TypeDef declared in some module.
	KindBasic TypeRefKind = iota

	// KindArray wraps an element TypeRef with a rank.
	KindArray

	// KindGenericInstance is an open generic definition closed over a list
	// of type arguments, e.g. List<int>.
	KindGenericInstance

	// KindGenericParam refers to a generic parameter of an enclosing type
	// or method, resolved indirectly through the cloner registry.
	KindGenericParam

	// KindExternal is a reference into a module outside the cloning
	// closure, resolved by delegating to the ordinary metadata importer
	// rather than the mixin substitution rule.
	KindExternal
)

// TypeRef is a reference to a type from somewhere in the metadata graph: a
// field's type, a parameter's type, a base type, and so on. Exactly one of
// the kind-specific fields is meaningful for a given Kind.
type TypeRef struct {
	Kind TypeRefKind

	// KindBasic only
	Def *TypeDef

	// KindExternal only: the name of the module the type lives in and the
	// type's full name there. Def is not set for an external reference.
	ExternalModule string
	ExternalName   string

	// KindArray
	ElemType *TypeRef
	Rank     int

	// KindGenericInstance
	GenericDef  *TypeRef
	GenericArgs []*TypeRef

	// KindGenericParam
	GenericParam *GenericParamDef
}

// BasicRef builds a TypeRef pointing directly at a declared type.
func BasicRef(t *TypeDef) *TypeRef {
	return &TypeRef{Kind: KindBasic, Def: t}
}

// ArrayRef builds a TypeRef for an array of the given element type and rank.
func ArrayRef(elem *TypeRef, rank int) *TypeRef {
	return &TypeRef{Kind: KindArray, ElemType: elem, Rank: rank}
}

// GenericInstanceRef builds a TypeRef for a closed generic instantiation.
func GenericInstanceRef(def *TypeRef, args []*TypeRef) *TypeRef {
	return &TypeRef{Kind: KindGenericInstance, GenericDef: def, GenericArgs: args}
}

// GenericParamRef builds a TypeRef pointing at a generic parameter.
func GenericParamRef(p *GenericParamDef) *TypeRef {
	return &TypeRef{Kind: KindGenericParam, GenericParam: p}
}

// ExternalRef builds a TypeRef for a type outside the cloning closure.
func ExternalRef(module, name string) *TypeRef {
	return &TypeRef{Kind: KindExternal, ExternalModule: module, ExternalName: name}
}

// FullName produces the substitution-oracle string form of a type
// reference: the canonical string signature-matching compares after
// substituting the source root's name with the target root's name (see
// SignatureString).
func (r *TypeRef) FullName() string {
	if r == nil {
		return "<nil>"
	}

	switch r.Kind {
	case KindBasic:
		return r.Def.FullName()
	case KindArray:
		suffix := "["
		for i := 1; i < r.Rank; i++ {
			suffix += ","
		}
		suffix += "]"
		return r.ElemType.FullName() + suffix
	case KindGenericInstance:
		s := r.GenericDef.FullName() + "<"
		for i, arg := range r.GenericArgs {
			if i > 0 {
				s += ","
			}
			s += arg.FullName()
		}
		return s + ">"
	case KindGenericParam:
		return "!" + r.GenericParam.Name
	case KindExternal:
		return r.ExternalModule + "!" + r.ExternalName
	default:
		return "<invalid-type-ref>"
	}
}

// -----------------------------------------------------------------------------

// GenericParamDef is a generic parameter belonging to a type or method.
type GenericParamDef struct {
	Name  string
	Index int

	// Owner is the TypeDef or MethodDef this parameter belongs to. Root-import
	// resolves a parameter through the registered target of this owner (see
	// rootimport's importGenericParam).
	Owner any

	Constraints []*TypeRef
}

// -----------------------------------------------------------------------------

// CustomAttribute is a single applied attribute: a type reference plus its
// constructor arguments.  Arguments may themselves be TypeRefs (e.g.
// [Attr(typeof(X))]), which is why root-import must recurse into them.
type CustomAttribute struct {
	AttrType *TypeRef
	Args     []AttrArg
}

// AttrTypeName returns the name an attribute-filter or skip-mark config
// value is matched against: a basic reference's full name, or an external
// reference's bare name (skip-mark and filter values name attributes by
// their source-side identity, before any module substitution).
func AttrTypeName(ref *TypeRef) string {
	if ref == nil {
		return ""
	}
	switch ref.Kind {
	case KindBasic:
		return ref.Def.FullName()
	case KindExternal:
		return ref.ExternalName
	default:
		return ""
	}
}

// AttrArgKind tags the shape of a single custom attribute argument.
type AttrArgKind int

const (
	ArgPrimitive AttrArgKind = iota
	ArgString
	ArgType
)

// AttrArg is one constructor argument of a custom attribute.
type AttrArg struct {
	Kind      AttrArgKind
	Primitive any
	String    string
	TypeArg   *TypeRef
}
