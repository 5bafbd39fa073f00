package weaver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weave/ilmodel"
	"weave/report"
	"weave/toposort"
	"weave/vgraph"
	"weave/weaver"
)

func newReporter(t *testing.T) *report.Reporter {
	t.Helper()
	r, err := report.New(report.LogLevelSilent, false)
	require.NoError(t, err)
	t.Cleanup(r.Sync)
	return r
}

func TestWeaveClonesFieldAndMethodWithBranch(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	mixin := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(mixin)

	intType := ilmodel.ExternalRef("mscorlib", "System.Int32")
	boolType := ilmodel.ExternalRef("mscorlib", "System.Boolean")

	counter := &ilmodel.FieldDef{DeclaringType: mixin, Name: "counter", Type: intType}
	mixin.Fields = append(mixin.Fields, counter)

	tick := &ilmodel.MethodDef{
		DeclaringType: mixin,
		Name:          "Tick",
		ReturnType:    ilmodel.ExternalRef("mscorlib", "System.Void"),
	}
	mixin.Methods = append(mixin.Methods, tick)

	local := &ilmodel.VariableDef{DeclaringMethod: tick, Index: 0, Type: boolType}
	body := &ilmodel.MethodBody{DeclaringMethod: tick, Variables: []*ilmodel.VariableDef{local}}
	tick.Body = body

	ldfld := &ilmodel.Instr{DeclaringBody: body, Index: 0, Op: ilmodel.OperandField, Opcode: ilmodel.OpLdfld,
		FieldOperand: &ilmodel.FieldRef{Def: counter}}
	brtrue := &ilmodel.Instr{DeclaringBody: body, Index: 1, Op: ilmodel.OperandInstr, Opcode: ilmodel.OpBrtrue}
	ret := &ilmodel.Instr{DeclaringBody: body, Index: 2, Op: ilmodel.OperandNone, Opcode: ilmodel.OpRet}
	brtrue.InstrOperand = ret

	body.Instrs = []*ilmodel.Instr{ldfld, brtrue, ret}

	host := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(host)

	reporter := newReporter(t)

	result, err := weaver.Weave(weaver.Options{
		SourceModule:  source,
		TargetModule:  target,
		SourceTypeFQN: "Mixin",
		TargetTypeFQN: "Host",
	}, reporter)
	require.NoError(t, err)
	assert.Same(t, mixin, result.SourceRoot)
	assert.Same(t, host, result.TargetRoot)

	require.Len(t, host.Fields, 1)
	assert.Equal(t, "counter", host.Fields[0].Name)

	require.Len(t, host.Methods, 1)
	clonedTick := host.Methods[0]
	assert.Equal(t, "Tick", clonedTick.Name)
	require.NotNil(t, clonedTick.Body)
	require.Len(t, clonedTick.Body.Instrs, 3)

	clonedLdfld := clonedTick.Body.Instrs[0]
	require.NotNil(t, clonedLdfld.FieldOperand)
	assert.Same(t, host.Fields[0], clonedLdfld.FieldOperand.Def)

	clonedBrtrue := clonedTick.Body.Instrs[1]
	assert.Same(t, clonedTick.Body.Instrs[2], clonedBrtrue.InstrOperand)
}

func TestWeaveNestedGenericInstanceReturnType(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	mixin := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(mixin)

	box := &ilmodel.TypeDef{Name: "Box"}
	mixin.AddNestedType(box)
	tParam := &ilmodel.GenericParamDef{Name: "T", Index: 0, Owner: box}
	box.GenericParams = append(box.GenericParams, tParam)

	valueField := &ilmodel.FieldDef{DeclaringType: box, Name: "Value", Type: ilmodel.GenericParamRef(tParam)}
	box.Fields = append(box.Fields, valueField)

	makeBox := &ilmodel.MethodDef{
		DeclaringType: mixin,
		Name:          "MakeBox",
		ReturnType: ilmodel.GenericInstanceRef(ilmodel.BasicRef(box), []*ilmodel.TypeRef{
			ilmodel.ExternalRef("mscorlib", "System.Int32"),
		}),
	}
	mixin.Methods = append(mixin.Methods, makeBox)

	host := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(host)

	reporter := newReporter(t)

	result, err := weaver.Weave(weaver.Options{
		SourceModule:  source,
		TargetModule:  target,
		SourceTypeFQN: "Mixin",
		TargetTypeFQN: "Host",
	}, reporter)
	require.NoError(t, err)
	_ = result

	require.Len(t, host.NestedTypes, 1)
	clonedBox := host.NestedTypes[0]
	assert.Equal(t, "Box", clonedBox.Name)
	require.Len(t, clonedBox.GenericParams, 1)

	require.Len(t, host.Methods, 1)
	clonedMakeBox := host.Methods[0]
	require.Equal(t, ilmodel.KindGenericInstance, clonedMakeBox.ReturnType.Kind)
	assert.Same(t, clonedBox, clonedMakeBox.ReturnType.GenericDef.Def)
}

func TestWeaveSkipsMarkedMembersAndFiltersRootAttrs(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	skipAttrType := &ilmodel.TypeDef{Namespace: "chai.mixin", Name: "Skip"}
	source.AddType(skipAttrType)
	keepAttrType := &ilmodel.TypeDef{Namespace: "chai.mixin", Name: "Keep"}
	source.AddType(keepAttrType)
	dropAttrType := &ilmodel.TypeDef{Namespace: "chai.mixin", Name: "MixinAttribute"}
	source.AddType(dropAttrType)

	mixin := &ilmodel.TypeDef{
		Name: "Mixin",
		CustomAttrs: []*ilmodel.CustomAttribute{
			{AttrType: ilmodel.BasicRef(dropAttrType)},
			{AttrType: ilmodel.BasicRef(keepAttrType)},
		},
	}
	source.AddType(mixin)

	kept := &ilmodel.FieldDef{DeclaringType: mixin, Name: "kept", Type: ilmodel.ExternalRef("mscorlib", "System.Int32")}
	skipped := &ilmodel.FieldDef{
		DeclaringType: mixin,
		Name:          "skipped",
		Type:          ilmodel.ExternalRef("mscorlib", "System.Int32"),
		CustomAttrs:   []*ilmodel.CustomAttribute{{AttrType: ilmodel.BasicRef(skipAttrType)}},
	}
	mixin.Fields = append(mixin.Fields, kept, skipped)

	host := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(host)

	reporter := newReporter(t)

	_, err := weaver.Weave(weaver.Options{
		SourceModule:  source,
		TargetModule:  target,
		SourceTypeFQN: "Mixin",
		TargetTypeFQN: "Host",
		SkipMark:      "chai.mixin.Skip",
		FilterAttrs:   []string{"chai.mixin.MixinAttribute"},
	}, reporter)
	require.NoError(t, err)

	require.Len(t, host.Fields, 1)
	assert.Equal(t, "kept", host.Fields[0].Name)

	require.Len(t, host.CustomAttrs, 1)
	assert.Equal(t, ilmodel.KindExternal, host.CustomAttrs[0].AttrType.Kind)
	assert.Equal(t, "chai.mixin.Keep", host.CustomAttrs[0].AttrType.ExternalName)
}

func TestWeavePropertyAccessorsWireGetterAndSetter(t *testing.T) {
	source := ilmodel.NewModule("SourceAsm")
	target := ilmodel.NewModule("TargetAsm")

	mixin := &ilmodel.TypeDef{Name: "Mixin"}
	source.AddType(mixin)

	getX := &ilmodel.MethodDef{DeclaringType: mixin, Name: "get_X", ReturnType: ilmodel.ExternalRef("mscorlib", "System.Int32")}
	setX := &ilmodel.MethodDef{DeclaringType: mixin, Name: "set_X", ReturnType: ilmodel.ExternalRef("mscorlib", "System.Void")}
	mixin.Methods = append(mixin.Methods, getX, setX)

	prop := &ilmodel.PropertyDef{DeclaringType: mixin, Name: "X", Type: ilmodel.ExternalRef("mscorlib", "System.Int32"), Getter: getX, Setter: setX}
	mixin.Properties = append(mixin.Properties, prop)

	host := &ilmodel.TypeDef{Name: "Host"}
	target.AddType(host)

	reporter := newReporter(t)

	_, err := weaver.Weave(weaver.Options{
		SourceModule:  source,
		TargetModule:  target,
		SourceTypeFQN: "Mixin",
		TargetTypeFQN: "Host",
	}, reporter)
	require.NoError(t, err)

	require.Len(t, host.Properties, 1)
	require.Len(t, host.Methods, 2)
	assert.Same(t, host.Methods[0], host.Properties[0].Getter)
	assert.Same(t, host.Methods[1], host.Properties[0].Setter)
}

// TestPopulationOrderingAbortsOnDependencyCycle exercises the exact
// sequence weaver.Weave runs to order the population pass — vgraph.NewGraph
// followed by toposort.Sort over dependency edges, with the result
// classified by report.Wrap — against a manufactured cyclic dependency
// pair. Discovery's own edge policy (see discovery.go) only ever emits
// dependency edges from a property/event to its accessors or from an
// exception handler to its boundary instructions, both of which are
// one-directional by construction and so can never produce a cycle from
// real source data; this test proves the abort path itself still works
// when one arises.
func TestPopulationOrderingAbortsOnDependencyCycle(t *testing.T) {
	mixin := &ilmodel.TypeDef{Name: "Mixin"}
	a := vgraph.New(vgraph.KindMethod, &ilmodel.MethodDef{DeclaringType: mixin, Name: "A"}, "Mixin::A")
	b := vgraph.New(vgraph.KindMethod, &ilmodel.MethodDef{DeclaringType: mixin, Name: "B"}, "Mixin::B")

	vertices := []vgraph.Vertex{a, b}
	dependency := []vgraph.Edge{{From: a, To: b}, {From: b, To: a}}

	graph, err := vgraph.NewGraph(vertices, nil, nil, dependency)
	require.NoError(t, err)

	_, err = toposort.Sort(vertices, graph.DependenciesOf)
	require.Error(t, err)

	wrapped := report.Wrap(err)
	werr, ok := wrapped.(*report.WeaveError)
	require.True(t, ok)
	assert.Equal(t, report.CyclicDependency, werr.Kind)
}
