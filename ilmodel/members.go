package ilmodel

// FieldDef is a declared field.
type FieldDef struct {
	DeclaringType *TypeDef

	Name        string
	Type        *TypeRef
	Attrs       MemberAttrs
	Constant    *ConstValue
	Marshal     *MarshalInfo
	CustomAttrs []*CustomAttribute
}

// MemberAttrs mirrors the visibility/mutability flags shared by fields,
// methods, properties, and events.
type MemberAttrs struct {
	Public   bool
	Static   bool
	ReadOnly bool
}

// ConstValue is a compile-time constant payload attached to a field or
// parameter default.
type ConstValue struct {
	Value any
}

// MarshalInfo is interop marshaling metadata; opaque to the weaver beyond
// being copied verbatim.
type MarshalInfo struct {
	NativeType string
}

// -----------------------------------------------------------------------------

// MethodDef is a declared method, including its signature and body.
type MethodDef struct {
	DeclaringType *TypeDef

	Name        string
	Attrs       MemberAttrs
	CallingConv CallingConvention

	GenericParams []*GenericParamDef
	Params        []*ParamDef
	ReturnType    *TypeRef

	Body *MethodBody

	CustomAttrs []*CustomAttribute
}

// CallingConvention enumerates the calling conventions the weaver needs to
// preserve when cloning a method signature.
type CallingConvention int

const (
	CallDefault CallingConvention = iota
	CallHasThis
	CallExplicitThis
	CallVarArg
)

// MethodBody holds the executable content of a method: locals and
// instructions.
type MethodBody struct {
	DeclaringMethod *MethodDef

	MaxStack   int
	InitLocals bool

	Variables         []*VariableDef
	Instrs            []*Instr
	ExceptionHandlers []*ExceptionHandler
}

// -----------------------------------------------------------------------------

// ParamDef is a declared method parameter.
type ParamDef struct {
	DeclaringMethod *MethodDef

	Name      string
	Index     int
	Type      *TypeRef
	In        bool
	Out       bool
	Optional  bool
	IsReturn  bool
	Constant  *ConstValue
	Marshal   *MarshalInfo

	CustomAttrs []*CustomAttribute
}

// VariableDef is a declared local variable within a method body.
type VariableDef struct {
	DeclaringMethod *MethodDef

	Index int
	Type  *TypeRef
}

// -----------------------------------------------------------------------------

// PropertyDef is a declared property, backed by up to two accessor methods.
type PropertyDef struct {
	DeclaringType *TypeDef

	Name  string
	Type  *TypeRef
	Attrs MemberAttrs

	Getter *MethodDef
	Setter *MethodDef

	CustomAttrs []*CustomAttribute
}

// EventDef is a declared event, backed by add/remove accessor methods.
type EventDef struct {
	DeclaringType *TypeDef

	Name  string
	Type  *TypeRef
	Attrs MemberAttrs

	AddMethod    *MethodDef
	RemoveMethod *MethodDef

	CustomAttrs []*CustomAttribute
}

// -----------------------------------------------------------------------------

// FieldRef is a reference to a field, either a direct definition in the
// current module or a reference into a generic instance's declaring type.
type FieldRef struct {
	// Def is the (possibly cloned) field definition being referenced.
	Def *FieldDef

	// DeclaringType overrides Def.DeclaringType when the field is accessed
	// through a closed generic instance, e.g. Box<int>.Value.
	DeclaringType *TypeRef
}

// FullName is the substitution-oracle string form of a field reference.
func (r *FieldRef) FullName() string {
	declType := r.Def.DeclaringType.FullName()
	if r.DeclaringType != nil {
		declType = r.DeclaringType.FullName()
	}
	return declType + "::" + r.Def.Name
}

// MethodRef is a reference to a method: a direct definition, a reference
// through a generic instance declaring type, or a generic instance method
// (an open method closed over method-level type arguments).
type MethodRef struct {
	Def *MethodDef

	// DeclaringType overrides Def.DeclaringType when the method is accessed
	// through a closed generic instance.
	DeclaringType *TypeRef

	// GenericArgs is non-empty when this reference is to a generic
	// instance method: Def is the open method, closed over these
	// method-level type arguments.
	GenericArgs []*TypeRef
}

// FullName is the substitution-oracle string form of a method reference.
func (r *MethodRef) FullName() string {
	declType := r.Def.DeclaringType.FullName()
	if r.DeclaringType != nil {
		declType = r.DeclaringType.FullName()
	}

	s := declType + "::" + r.Def.Name
	if len(r.GenericArgs) > 0 {
		s += "<"
		for i, a := range r.GenericArgs {
			if i > 0 {
				s += ","
			}
			s += a.FullName()
		}
		s += ">"
	}
	return s
}

// SignatureString renders a method's parameter/return shape for the
// substituted-string equality oracle, with every occurrence of
// substituteFrom in a type name replaced by substituteTo. Root-import
// renders the source method with the source root's full name replaced by
// the target root's, and treats it as equal to a target method whose
// unsubstituted string form is the same.
func SignatureString(m *MethodDef, substituteFrom, substituteTo string) string {
	s := m.Name + "("
	for i, p := range m.Params {
		if i > 0 {
			s += ","
		}
		s += substitute(p.Type.FullName(), substituteFrom, substituteTo)
	}
	s += ")"
	s += substitute(m.ReturnType.FullName(), substituteFrom, substituteTo)
	return s
}

func substitute(s, from, to string) string {
	if from == "" {
		return s
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if i+len(from) <= len(s) && s[i:i+len(from)] == from {
			out = append(out, to...)
			i += len(from)
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}
