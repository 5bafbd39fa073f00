package fixtureio

import "weave/ilmodel"

// encodeCtx tracks instruction indices so branch/variable/param operands
// can be encoded positionally, mirroring how decode resolves them.
type encodeCtx struct {
	instrIndex map[*ilmodel.Instr]int
	varIndex   map[*ilmodel.VariableDef]int
}

func encodeModule(m *ilmodel.Module) *moduleDoc {
	doc := &moduleDoc{Name: m.Name}
	for _, t := range m.Types {
		if t.DeclaringType == nil {
			doc.Types = append(doc.Types, encodeType(t))
		}
	}
	return doc
}

func encodeType(t *ilmodel.TypeDef) *typeDoc {
	doc := &typeDoc{
		Name:      t.Name,
		Namespace: t.Namespace,
		Public:    t.Attrs.Public,
		Abstract:  t.Attrs.Abstract,
		Sealed:    t.Attrs.Sealed,
		Layout:    encodeLayout(t.Layout),
	}

	if t.BaseType != nil {
		doc.Base = encodeTypeRef(t.BaseType)
	}
	for _, i := range t.Interfaces {
		doc.Interfaces = append(doc.Interfaces, encodeTypeRef(i))
	}
	for _, g := range t.GenericParams {
		doc.Generics = append(doc.Generics, &genParamDoc{Name: g.Name, Index: g.Index})
	}
	for _, f := range t.Fields {
		doc.Fields = append(doc.Fields, encodeField(f))
	}
	for _, m := range t.Methods {
		doc.Methods = append(doc.Methods, encodeMethod(m))
	}
	for _, p := range t.Properties {
		doc.Properties = append(doc.Properties, encodeProperty(p))
	}
	for _, e := range t.Events {
		doc.Events = append(doc.Events, encodeEvent(e))
	}
	for _, a := range t.CustomAttrs {
		doc.Attrs = append(doc.Attrs, encodeAttr(a))
	}
	for _, n := range t.NestedTypes {
		doc.Nested = append(doc.Nested, encodeType(n))
	}

	return doc
}

func encodeField(f *ilmodel.FieldDef) *fieldDoc {
	doc := &fieldDoc{
		Name:     f.Name,
		Type:     encodeTypeRef(f.Type),
		Public:   f.Attrs.Public,
		Static:   f.Attrs.Static,
		ReadOnly: f.Attrs.ReadOnly,
	}
	if f.Constant != nil {
		doc.Constant = f.Constant.Value
	}
	for _, a := range f.CustomAttrs {
		doc.Attrs = append(doc.Attrs, encodeAttr(a))
	}
	return doc
}

func encodeMethod(m *ilmodel.MethodDef) *methodDoc {
	doc := &methodDoc{
		Name:        m.Name,
		Public:      m.Attrs.Public,
		Static:      m.Attrs.Static,
		CallingConv: encodeCallingConv(m.CallingConv),
		ReturnType:  encodeTypeRef(m.ReturnType),
	}

	for _, g := range m.GenericParams {
		doc.Generics = append(doc.Generics, &genParamDoc{Name: g.Name, Index: g.Index})
	}
	for _, p := range m.Params {
		doc.Params = append(doc.Params, encodeParam(p))
	}
	for _, a := range m.CustomAttrs {
		doc.Attrs = append(doc.Attrs, encodeAttr(a))
	}
	if m.Body != nil {
		doc.Body = encodeBody(m.Body)
	}

	return doc
}

func encodeParam(p *ilmodel.ParamDef) *paramDoc {
	doc := &paramDoc{
		Name:     p.Name,
		Type:     encodeTypeRef(p.Type),
		In:       p.In,
		Out:      p.Out,
		Optional: p.Optional,
		IsReturn: p.IsReturn,
	}
	for _, a := range p.CustomAttrs {
		doc.Attrs = append(doc.Attrs, encodeAttr(a))
	}
	return doc
}

func encodeProperty(p *ilmodel.PropertyDef) *propertyDoc {
	doc := &propertyDoc{
		Name:   p.Name,
		Type:   encodeTypeRef(p.Type),
		Public: p.Attrs.Public,
	}
	if p.Getter != nil {
		doc.Getter = p.Getter.Name
	}
	if p.Setter != nil {
		doc.Setter = p.Setter.Name
	}
	return doc
}

func encodeEvent(e *ilmodel.EventDef) *eventDoc {
	doc := &eventDoc{
		Name:   e.Name,
		Type:   encodeTypeRef(e.Type),
		Public: e.Attrs.Public,
	}
	if e.AddMethod != nil {
		doc.Add = e.AddMethod.Name
	}
	if e.RemoveMethod != nil {
		doc.Remove = e.RemoveMethod.Name
	}
	return doc
}

func encodeBody(b *ilmodel.MethodBody) *bodyDoc {
	ctx := &encodeCtx{
		instrIndex: make(map[*ilmodel.Instr]int, len(b.Instrs)),
		varIndex:   make(map[*ilmodel.VariableDef]int, len(b.Variables)),
	}
	for i, instr := range b.Instrs {
		ctx.instrIndex[instr] = i
	}
	for i, v := range b.Variables {
		ctx.varIndex[v] = i
	}

	doc := &bodyDoc{MaxStack: b.MaxStack, InitLocals: b.InitLocals}

	for _, v := range b.Variables {
		doc.Variables = append(doc.Variables, &variableDoc{Index: v.Index, Type: encodeTypeRef(v.Type)})
	}

	for _, instr := range b.Instrs {
		doc.Instrs = append(doc.Instrs, ctx.encodeInstr(instr))
	}

	for _, h := range b.ExceptionHandlers {
		hd := &handlerDoc{
			Kind:         encodeHandlerKind(h.Kind),
			TryStart:     ctx.instrIndex[h.TryStart],
			TryEnd:       ctx.instrIndex[h.TryEnd],
			HandlerStart: ctx.instrIndex[h.HandlerStart],
			HandlerEnd:   ctx.instrIndex[h.HandlerEnd],
		}
		if h.CatchType != nil {
			hd.CatchType = encodeTypeRef(h.CatchType)
		}
		if h.FilterStart != nil {
			hd.FilterStart = ctx.instrIndex[h.FilterStart]
		}
		doc.Handlers = append(doc.Handlers, hd)
	}

	return doc
}

func (ctx *encodeCtx) encodeInstr(instr *ilmodel.Instr) *instrDoc {
	doc := &instrDoc{Op: instr.Opcode.Mnemonic}

	switch instr.Op {
	case ilmodel.OperandType:
		doc.Operand = "type"
		doc.TypeOperand = encodeTypeRef(instr.TypeOperand)
	case ilmodel.OperandField:
		doc.Operand = "field"
		doc.FieldOperand = encodeFieldRef(instr.FieldOperand)
	case ilmodel.OperandMethod:
		doc.Operand = "method"
		doc.MethodOperand = encodeMethodRef(instr.MethodOperand)
	case ilmodel.OperandParam:
		doc.Operand = "param"
		doc.ParamOperand = instr.ParamOperand.Index
	case ilmodel.OperandVar:
		doc.Operand = "var"
		doc.VarOperand = ctx.varIndex[instr.VarOperand]
	case ilmodel.OperandInstr:
		doc.Operand = "instr"
		doc.InstrOperand = ctx.instrIndex[instr.InstrOperand]
	case ilmodel.OperandInstrList:
		doc.Operand = "instrList"
		for _, target := range instr.InstrList {
			doc.InstrList = append(doc.InstrList, ctx.instrIndex[target])
		}
	case ilmodel.OperandPrimitive:
		doc.Operand = "primitive"
		doc.Primitive = instr.Primitive
	case ilmodel.OperandString:
		doc.Operand = "string"
		doc.StringLiteral = instr.StringLiteral
	default:
		doc.Operand = "none"
	}

	return doc
}

func encodeFieldRef(r *ilmodel.FieldRef) *fieldRefDoc {
	doc := &fieldRefDoc{
		DeclaringType: r.Def.DeclaringType.FullName(),
		FieldName:     r.Def.Name,
	}
	if r.DeclaringType != nil {
		doc.Override = encodeTypeRef(r.DeclaringType)
	}
	return doc
}

func encodeMethodRef(r *ilmodel.MethodRef) *methodRefDoc {
	doc := &methodRefDoc{
		DeclaringType: r.Def.DeclaringType.FullName(),
		MethodName:    r.Def.Name,
	}
	if r.DeclaringType != nil {
		doc.Override = encodeTypeRef(r.DeclaringType)
	}
	for _, a := range r.GenericArgs {
		doc.GenericArgs = append(doc.GenericArgs, encodeTypeRef(a))
	}
	return doc
}

func encodeAttr(a *ilmodel.CustomAttribute) *attrDoc {
	doc := &attrDoc{AttrType: encodeTypeRef(a.AttrType)}
	for _, arg := range a.Args {
		ad := argDoc{Primitive: arg.Primitive, String: arg.String}
		switch arg.Kind {
		case ilmodel.ArgType:
			ad.Kind = "type"
			ad.TypeArg = encodeTypeRef(arg.TypeArg)
		case ilmodel.ArgString:
			ad.Kind = "string"
		default:
			ad.Kind = "primitive"
		}
		doc.Args = append(doc.Args, ad)
	}
	return doc
}

func encodeTypeRef(r *ilmodel.TypeRef) *typeRefDoc {
	if r == nil {
		return nil
	}

	switch r.Kind {
	case ilmodel.KindBasic:
		return &typeRefDoc{Kind: "basic", Ref: r.Def.FullName()}
	case ilmodel.KindArray:
		return &typeRefDoc{Kind: "array", Elem: encodeTypeRef(r.ElemType), Rank: r.Rank}
	case ilmodel.KindGenericInstance:
		doc := &typeRefDoc{Kind: "generic-instance", GenericDef: encodeTypeRef(r.GenericDef)}
		for _, a := range r.GenericArgs {
			doc.GenericArgs = append(doc.GenericArgs, encodeTypeRef(a))
		}
		return doc
	case ilmodel.KindGenericParam:
		ownerKind, ownerKey := ownerKeyOf(r.GenericParam)
		return &typeRefDoc{Kind: "generic-param", OwnerKind: ownerKind, OwnerKey: ownerKey, ParamName: r.GenericParam.Name}
	case ilmodel.KindExternal:
		return &typeRefDoc{Kind: "external", Module: r.ExternalModule, Name: r.ExternalName}
	default:
		return nil
	}
}

func ownerKeyOf(gp *ilmodel.GenericParamDef) (kind, key string) {
	switch owner := gp.Owner.(type) {
	case *ilmodel.MethodDef:
		return "method", owner.DeclaringType.FullName() + "::" + owner.Name
	case *ilmodel.TypeDef:
		return "type", owner.FullName()
	default:
		return "type", ""
	}
}

func encodeLayout(k ilmodel.LayoutKind) string {
	switch k {
	case ilmodel.LayoutSequential:
		return "sequential"
	case ilmodel.LayoutExplicit:
		return "explicit"
	default:
		return "auto"
	}
}

func encodeCallingConv(c ilmodel.CallingConvention) string {
	switch c {
	case ilmodel.CallHasThis:
		return "hasthis"
	case ilmodel.CallExplicitThis:
		return "explicitthis"
	case ilmodel.CallVarArg:
		return "vararg"
	default:
		return ""
	}
}

func encodeHandlerKind(k ilmodel.ExceptionHandlerKind) string {
	switch k {
	case ilmodel.HandlerFilter:
		return "filter"
	case ilmodel.HandlerFinally:
		return "finally"
	case ilmodel.HandlerFault:
		return "fault"
	default:
		return "catch"
	}
}
