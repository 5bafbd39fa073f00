package rootimport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave/ilmodel"
	"weave/registry"
	"weave/rootimport"
	"weave/vgraph"
)

func TestImportTypeSubstitutesRoot(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	src := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(src)
	tgt := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(tgt)

	reg := registry.New()
	require.NoError(t, reg.SetAllClonersAdded())

	im := rootimport.New(src, tgt, reg, map[any]vgraph.Vertex{})

	ref, err := im.ImportType(ilmodel.BasicRef(src))
	require.NoError(t, err)
	assert.Equal(t, tgt, ref.Def)
}

func TestImportTypeExternalPassthrough(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	src := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(src)
	tgt := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(tgt)

	other := &ilmodel.TypeDef{Name: "Helper"}
	source.AddType(other)

	reg := registry.New()
	require.NoError(t, reg.SetAllClonersAdded())

	im := rootimport.New(src, tgt, reg, map[any]vgraph.Vertex{})

	ref, err := im.ImportType(ilmodel.BasicRef(other))
	require.NoError(t, err)
	assert.Equal(t, ilmodel.KindExternal, ref.Kind)
	assert.Equal(t, "SourceAsm", ref.ExternalModule)
	assert.Equal(t, "Helper", ref.ExternalName)
}

func TestImportTypeMixinMappedNestedType(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	src := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(src)
	srcNested := &ilmodel.TypeDef{Name: "Inner"}
	src.AddNestedType(srcNested)

	tgt := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(tgt)
	tgtNested := &ilmodel.TypeDef{Name: "Inner"}
	tgt.AddNestedType(tgtNested)

	nestedVertex := vgraph.New(vgraph.KindType, srcNested, "Mixin+Inner")

	reg := registry.New()
	require.NoError(t, reg.Add(nestedVertex, tgtNested))
	require.NoError(t, reg.SetAllClonersAdded())

	im := rootimport.New(src, tgt, reg, map[any]vgraph.Vertex{srcNested: nestedVertex})

	ref, err := im.ImportType(ilmodel.BasicRef(srcNested))
	require.NoError(t, err)
	assert.Equal(t, tgtNested, ref.Def)
}

func TestImportFieldFindsByNameWhenNotCloned(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	src := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(src)
	tgt := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(tgt)

	countField := &ilmodel.FieldDef{DeclaringType: tgt, Name: "count", Type: ilmodel.ExternalRef("mscorlib", "System.Int32")}
	tgt.Fields = append(tgt.Fields, countField)

	srcField := &ilmodel.FieldDef{DeclaringType: src, Name: "count", Type: ilmodel.ExternalRef("mscorlib", "System.Int32")}

	reg := registry.New()
	require.NoError(t, reg.SetAllClonersAdded())

	im := rootimport.New(src, tgt, reg, map[any]vgraph.Vertex{})

	ref, err := im.ImportField(&ilmodel.FieldRef{Def: srcField})
	require.NoError(t, err)
	assert.Equal(t, countField, ref.Def)
}

func TestImportGenericParamUnmaterializedOwner(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	src := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(src)
	tgt := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(tgt)

	genOwner := &ilmodel.TypeDef{Name: "Box"}
	source.AddType(genOwner)
	gp := &ilmodel.GenericParamDef{Name: "T", Index: 0, Owner: genOwner}
	genOwner.GenericParams = append(genOwner.GenericParams, gp)

	ownerVertex := vgraph.New(vgraph.KindType, genOwner, "Box")

	reg := registry.New()
	require.NoError(t, reg.SetAllClonersAdded())

	im := rootimport.New(src, tgt, reg, map[any]vgraph.Vertex{genOwner: ownerVertex})

	_, err := im.ImportType(ilmodel.GenericParamRef(gp))
	require.Error(t, err)
	var rerr *rootimport.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, rootimport.ErrUnmaterializedGenericParameter, rerr.Kind)
}
