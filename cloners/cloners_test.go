package cloners_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave/cloners"
	"weave/ilmodel"
	"weave/registry"
	"weave/rootimport"
	"weave/vgraph"
)

func TestFieldClonerCreateAndPopulate(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	src := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(src)
	tgt := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(tgt)

	intType := ilmodel.ExternalRef("mscorlib", "System.Int32")
	srcField := &ilmodel.FieldDef{DeclaringType: src, Name: "count", Type: intType}
	src.Fields = append(src.Fields, srcField)

	reg := registry.New()
	vertices := map[any]vgraph.Vertex{}
	im := rootimport.New(src, tgt, reg, vertices)
	ctx := &cloners.Context{Importer: im, Registry: reg, Vertices: vertices}

	fc := &cloners.FieldCloner{Source: srcField, ParentTarget: tgt}
	targetObj, err := fc.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, reg.SetAllClonersAdded())

	require.NoError(t, fc.Populate(ctx, targetObj))

	clonedField := targetObj.(*ilmodel.FieldDef)
	assert.Equal(t, "count", clonedField.Name)
	assert.Same(t, tgt, clonedField.DeclaringType)
	assert.Equal(t, ilmodel.KindExternal, clonedField.Type.Kind)
	assert.Contains(t, tgt.Fields, clonedField)
}

func TestTypeClonerImportsUnclonedBaseTypeAsExternal(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	src := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(src)
	base := &ilmodel.TypeDef{Name: "Base"}
	source.AddType(base)
	src.BaseType = ilmodel.BasicRef(base)

	tgt := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(tgt)

	reg := registry.New()
	vertices := map[any]vgraph.Vertex{}
	im := rootimport.New(src, tgt, reg, vertices)
	ctx := &cloners.Context{Importer: im, Registry: reg, Vertices: vertices}

	require.NoError(t, reg.SetAllClonersAdded())

	tc := &cloners.TypeCloner{Source: src, TargetModule: target}
	require.NoError(t, tc.Populate(ctx, tgt))

	assert.Equal(t, ilmodel.KindExternal, tgt.BaseType.Kind)
	assert.Equal(t, "SourceAsm", tgt.BaseType.ExternalModule)
}
