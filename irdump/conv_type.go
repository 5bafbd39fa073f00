package irdump

import (
	"github.com/llir/llvm/ir/types"

	"weave/ilmodel"
)

// primNames maps the .NET primitive type names the weaver's fixtures use
// (System.* external references) to their closest LLVM equivalent.
var primNames = map[string]types.Type{
	"System.Byte":    types.I8,
	"System.SByte":   types.I8,
	"System.Int16":   types.I16,
	"System.UInt16":  types.I16,
	"System.Int32":   types.I32,
	"System.UInt32":  types.I32,
	"System.Int64":   types.I64,
	"System.UInt64":  types.I64,
	"System.Single":  types.Float,
	"System.Double":  types.Double,
	"System.Boolean": types.I1,
	"System.Void":    types.Void,
	"System.Char":    types.I16,
	"System.String":  types.NewPointer(types.I8),
	"System.IntPtr":  types.NewPointer(types.I8),
}

// convType converts a root-imported .NET type reference to the closest
// LLVM type this listing can represent. The second return is false for
// any shape the table below has no entry for, in which case the caller
// falls back to an "; unsupported" comment rather than aborting the dump.
func convType(ref *ilmodel.TypeRef) (types.Type, bool) {
	if ref == nil {
		return types.Void, true
	}

	switch ref.Kind {
	case ilmodel.KindExternal:
		if llTyp, ok := primNames[ref.ExternalName]; ok {
			return llTyp, true
		}
		return nil, false

	case ilmodel.KindBasic:
		// A reference-typed clone: every mixin type maps onto an LLVM
		// pointer-to-opaque-struct.
		return types.NewPointer(types.NewStruct()), true

	case ilmodel.KindArray:
		elem, ok := convType(ref.ElemType)
		if !ok {
			return nil, false
		}
		return types.NewPointer(elem), true

	case ilmodel.KindGenericInstance:
		// Shape-only dump: a closed generic instance is shown as a pointer
		// to its (unspecialized) generic definition's shape.
		return convType(ref.GenericDef)

	case ilmodel.KindGenericParam:
		// Unbound at dump time; represented as an opaque pointer.
		return types.NewPointer(types.NewStruct()), true

	default:
		return nil, false
	}
}
