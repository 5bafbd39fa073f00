// Package rootimport is the Root-Import Engine: it rewrites any reference
// that started out relative to the source module into one relative to the
// target module. A reference into the type being mixed in (or into any
// other entity the weave cloned) is redirected to its clone via the cloner
// registry. A type reference to anything else becomes an ordinary
// cross-module reference (ilmodel.ExternalRef). A field or method reference
// is resolved only against a declaring type that imports to a local
// TypeDef (the target root, a clone, or a generic instance of one); when
// the declaring type imports to an external reference, ImportField and
// ImportMethod fail with ErrUnresolvedDeclaringType.
//
// The engine performs a structural recursion over ilmodel's TypeRef tagged
// union, memoizing every resolution in three plain maps (type, field,
// method) keyed by the substitution-oracle string form of the reference.
// The caches are never evicted: within a single weave, a reference always
// resolves to the same target, so re-resolving it would only waste work.
package rootimport

import (
	"weave/ilmodel"
	"weave/registry"
	"weave/vgraph"
)

// Importer holds everything a resolution needs: the source and target
// modules and root types, the cloner registry, and a lookup from a source
// ilmodel object to the vertex the graph gave it (so a resolution can ask
// the registry whether that vertex has been cloned).
type Importer struct {
	SourceRoot *ilmodel.TypeDef
	TargetRoot *ilmodel.TypeDef

	registry *registry.Registry
	vertices map[any]vgraph.Vertex

	typeCache   map[string]*ilmodel.TypeRef
	fieldCache  map[string]*ilmodel.FieldRef
	methodCache map[string]*ilmodel.MethodRef
}

// New builds a Root-Import Engine for a single weave. vertices maps every
// source-side ilmodel object (a *TypeDef, *FieldDef, *MethodDef, or
// *GenericParamDef owner) to the vgraph.Vertex the driver created for it.
func New(sourceRoot, targetRoot *ilmodel.TypeDef, reg *registry.Registry, vertices map[any]vgraph.Vertex) *Importer {
	return &Importer{
		SourceRoot:  sourceRoot,
		TargetRoot:  targetRoot,
		registry:    reg,
		vertices:    vertices,
		typeCache:   make(map[string]*ilmodel.TypeRef),
		fieldCache:  make(map[string]*ilmodel.FieldRef),
		methodCache: make(map[string]*ilmodel.MethodRef),
	}
}

// ImportType rewrites a type reference from source-module-relative to
// target-module-relative, substituting the mixin's clone wherever the
// registry has one.
func (im *Importer) ImportType(ref *ilmodel.TypeRef) (*ilmodel.TypeRef, error) {
	if ref == nil {
		return nil, nil
	}

	key := ref.FullName()
	if cached, ok := im.typeCache[key]; ok {
		return cached, nil
	}

	result, err := im.importTypeUncached(ref)
	if err != nil {
		return nil, err
	}

	im.typeCache[key] = result
	return result, nil
}

func (im *Importer) importTypeUncached(ref *ilmodel.TypeRef) (*ilmodel.TypeRef, error) {
	switch ref.Kind {
	case ilmodel.KindBasic:
		return im.importBasic(ref)

	case ilmodel.KindArray:
		elem, err := im.ImportType(ref.ElemType)
		if err != nil {
			return nil, err
		}
		return ilmodel.ArrayRef(elem, ref.Rank), nil

	case ilmodel.KindGenericInstance:
		def, err := im.ImportType(ref.GenericDef)
		if err != nil {
			return nil, err
		}
		args := make([]*ilmodel.TypeRef, len(ref.GenericArgs))
		for i, a := range ref.GenericArgs {
			imported, err := im.ImportType(a)
			if err != nil {
				return nil, err
			}
			args[i] = imported
		}
		return ilmodel.GenericInstanceRef(def, args), nil

	case ilmodel.KindGenericParam:
		return im.importGenericParam(ref.GenericParam)

	case ilmodel.KindExternal:
		// Already fully qualified outside the cloning closure; the ordinary
		// metadata importer has nothing to do here.
		return ref, nil

	default:
		return ref, nil
	}
}

// importBasic redirects a reference to the source root (or to any other
// entity the weave has cloned) to its target-side counterpart, and
// otherwise leaves the reference as an external pointer back at the source
// module.
func (im *Importer) importBasic(ref *ilmodel.TypeRef) (*ilmodel.TypeRef, error) {
	if ref.Def == im.SourceRoot {
		return ilmodel.BasicRef(im.TargetRoot), nil
	}

	if v, ok := im.vertices[ref.Def]; ok {
		target, found, err := im.registry.TryGetTargetFor(v)
		if err != nil {
			return nil, err
		}
		if found {
			td, ok := target.(*ilmodel.TypeDef)
			if !ok {
				return nil, newError(ErrUnresolvedDeclaringType, ref.FullName())
			}
			return ilmodel.BasicRef(td), nil
		}
	}

	return ilmodel.ExternalRef(ref.Def.Module.Name, ref.Def.FullName()), nil
}

func (im *Importer) importGenericParam(gp *ilmodel.GenericParamDef) (*ilmodel.TypeRef, error) {
	ownerVertex, ok := im.vertices[gp.Owner]
	if !ok {
		return nil, newError(ErrUnknownGenericParameter, "!"+gp.Name)
	}

	target, found, err := im.registry.TryGetTargetFor(ownerVertex)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, newError(ErrUnmaterializedGenericParameter, "!"+gp.Name)
	}

	switch owner := target.(type) {
	case *ilmodel.TypeDef:
		if gp.Index >= len(owner.GenericParams) {
			return nil, newError(ErrUnknownGenericParameter, "!"+gp.Name)
		}
		return ilmodel.GenericParamRef(owner.GenericParams[gp.Index]), nil
	case *ilmodel.MethodDef:
		if gp.Index >= len(owner.GenericParams) {
			return nil, newError(ErrUnknownGenericParameter, "!"+gp.Name)
		}
		return ilmodel.GenericParamRef(owner.GenericParams[gp.Index]), nil
	default:
		return nil, newError(ErrUnknownGenericParameter, "!"+gp.Name)
	}
}

// declaringTypeRef returns the effective declaring-type reference of a
// member reference: the override if present, else a basic reference to the
// definition's own declaring type.
func declaringTypeRef(override *ilmodel.TypeRef, declaring *ilmodel.TypeDef) *ilmodel.TypeRef {
	if override != nil {
		return override
	}
	return ilmodel.BasicRef(declaring)
}

// ImportField rewrites a field reference. If the field itself was cloned,
// the registry supplies the exact target field; otherwise the target type
// is searched by name.
func (im *Importer) ImportField(ref *ilmodel.FieldRef) (*ilmodel.FieldRef, error) {
	key := ref.FullName()
	if cached, ok := im.fieldCache[key]; ok {
		return cached, nil
	}

	declRef, err := im.ImportType(declaringTypeRef(ref.DeclaringType, ref.Def.DeclaringType))
	if err != nil {
		return nil, err
	}
	if declRef.Kind != ilmodel.KindBasic && declRef.Kind != ilmodel.KindGenericInstance {
		return nil, newError(ErrUnresolvedDeclaringType, key)
	}

	declType := effectiveTypeDef(declRef)

	var fieldDef *ilmodel.FieldDef
	if v, ok := im.vertices[ref.Def]; ok {
		if target, found, ferr := im.registry.TryGetTargetFor(v); ferr != nil {
			return nil, ferr
		} else if found {
			fieldDef, _ = target.(*ilmodel.FieldDef)
		}
	}
	if fieldDef == nil {
		fieldDef = findFieldByName(declType, ref.Def.Name)
	}
	if fieldDef == nil {
		return nil, newError(ErrSignatureMatchMissing, key)
	}

	result := &ilmodel.FieldRef{Def: fieldDef}
	if ref.DeclaringType != nil {
		result.DeclaringType = declRef
	}

	im.fieldCache[key] = result
	return result, nil
}

// ImportMethod rewrites a method reference. If the method itself was
// cloned, the registry supplies the exact target method; otherwise the
// target type is searched for a method whose signature matches under the
// substituted-string equality oracle.
func (im *Importer) ImportMethod(ref *ilmodel.MethodRef) (*ilmodel.MethodRef, error) {
	key := ref.FullName()
	if cached, ok := im.methodCache[key]; ok {
		return cached, nil
	}

	declRef, err := im.ImportType(declaringTypeRef(ref.DeclaringType, ref.Def.DeclaringType))
	if err != nil {
		return nil, err
	}
	if declRef.Kind != ilmodel.KindBasic && declRef.Kind != ilmodel.KindGenericInstance {
		return nil, newError(ErrUnresolvedDeclaringType, key)
	}

	declType := effectiveTypeDef(declRef)

	var methodDef *ilmodel.MethodDef
	if v, ok := im.vertices[ref.Def]; ok {
		if target, found, ferr := im.registry.TryGetTargetFor(v); ferr != nil {
			return nil, ferr
		} else if found {
			methodDef, _ = target.(*ilmodel.MethodDef)
		}
	}
	if methodDef == nil {
		wanted := ilmodel.SignatureString(ref.Def, im.SourceRoot.FullName(), im.TargetRoot.FullName())
		methodDef = findMethodBySignature(declType, wanted)
	}
	if methodDef == nil {
		return nil, newError(ErrSignatureMatchMissing, key)
	}

	result := &ilmodel.MethodRef{Def: methodDef}
	if ref.DeclaringType != nil {
		result.DeclaringType = declRef
	}
	for _, a := range ref.GenericArgs {
		imported, err := im.ImportType(a)
		if err != nil {
			return nil, err
		}
		result.GenericArgs = append(result.GenericArgs, imported)
	}

	im.methodCache[key] = result
	return result, nil
}

func effectiveTypeDef(ref *ilmodel.TypeRef) *ilmodel.TypeDef {
	switch ref.Kind {
	case ilmodel.KindBasic:
		return ref.Def
	case ilmodel.KindGenericInstance:
		return effectiveTypeDef(ref.GenericDef)
	default:
		return nil
	}
}

func findFieldByName(t *ilmodel.TypeDef, name string) *ilmodel.FieldDef {
	if t == nil {
		return nil
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func findMethodBySignature(t *ilmodel.TypeDef, wanted string) *ilmodel.MethodDef {
	if t == nil {
		return nil
	}
	for _, m := range t.Methods {
		if ilmodel.SignatureString(m, "", "") == wanted {
			return m
		}
	}
	return nil
}
