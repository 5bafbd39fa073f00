package fixtureio

import (
	"fmt"

	"weave/ilmodel"
)

// decodeCtx accumulates the by-name lookup tables used to resolve
// typeRefDoc/fieldRefDoc/methodRefDoc pointers in the second decoding pass.
type decodeCtx struct {
	mod *ilmodel.Module

	types      map[string]*ilmodel.TypeDef
	fields     map[string]*ilmodel.FieldDef
	methods    map[string]*ilmodel.MethodDef
	typeGens   map[string]*ilmodel.GenericParamDef // "TypeFullName!ParamName"
	methodGens map[string]*ilmodel.GenericParamDef // "TypeFullName::MethodName!ParamName"
}

func decodeModule(doc *moduleDoc) (*ilmodel.Module, error) {
	mod := ilmodel.NewModule(doc.Name)
	ctx := &decodeCtx{
		mod:        mod,
		types:      map[string]*ilmodel.TypeDef{},
		fields:     map[string]*ilmodel.FieldDef{},
		methods:    map[string]*ilmodel.MethodDef{},
		typeGens:   map[string]*ilmodel.GenericParamDef{},
		methodGens: map[string]*ilmodel.GenericParamDef{},
	}

	// Pass 1: allocate every named entity so cross-references can resolve
	// regardless of declaration order, mirroring the weaver's own
	// create-then-populate discipline.
	var roots []*ilmodel.TypeDef
	for _, td := range doc.Types {
		t, err := ctx.createType(td, nil)
		if err != nil {
			return nil, err
		}
		roots = append(roots, t)
	}

	// Pass 2: populate every entity now that all names are resolvable.
	for i, td := range doc.Types {
		if err := ctx.populateType(td, roots[i]); err != nil {
			return nil, err
		}
	}

	for _, t := range roots {
		mod.AddType(t)
	}

	return mod, nil
}

func (c *decodeCtx) createType(doc *typeDoc, declaring *ilmodel.TypeDef) (*ilmodel.TypeDef, error) {
	t := &ilmodel.TypeDef{
		Name:          doc.Name,
		Namespace:     doc.Namespace,
		DeclaringType: declaring,
		Module:        c.mod,
		Attrs: ilmodel.TypeAttrs{
			Public:   doc.Public,
			Abstract: doc.Abstract,
			Sealed:   doc.Sealed,
			Nested:   declaring != nil,
		},
		Layout: decodeLayout(doc.Layout),
	}

	c.types[t.FullName()] = t

	for i, g := range doc.Generics {
		gp := &ilmodel.GenericParamDef{Name: g.Name, Index: i, Owner: t}
		t.GenericParams = append(t.GenericParams, gp)
		c.typeGens[t.FullName()+"!"+g.Name] = gp
	}

	for _, fd := range doc.Fields {
		f := &ilmodel.FieldDef{
			DeclaringType: t,
			Name:          fd.Name,
			Attrs: ilmodel.MemberAttrs{
				Public:   fd.Public,
				Static:   fd.Static,
				ReadOnly: fd.ReadOnly,
			},
		}
		if fd.Constant != nil {
			f.Constant = &ilmodel.ConstValue{Value: fd.Constant}
		}
		t.Fields = append(t.Fields, f)
		c.fields[t.FullName()+"::"+f.Name] = f
	}

	for _, md := range doc.Methods {
		m := &ilmodel.MethodDef{
			DeclaringType: t,
			Name:          md.Name,
			Attrs: ilmodel.MemberAttrs{
				Public: md.Public,
				Static: md.Static,
			},
			CallingConv: decodeCallingConv(md.CallingConv),
		}
		t.Methods = append(t.Methods, m)
		c.methods[t.FullName()+"::"+m.Name] = m

		for i, g := range md.Generics {
			gp := &ilmodel.GenericParamDef{Name: g.Name, Index: i, Owner: m}
			m.GenericParams = append(m.GenericParams, gp)
			c.methodGens[t.FullName()+"::"+m.Name+"!"+g.Name] = gp
		}
	}

	for _, pd := range doc.Properties {
		p := &ilmodel.PropertyDef{
			DeclaringType: t,
			Name:          pd.Name,
			Attrs:         ilmodel.MemberAttrs{Public: pd.Public},
		}
		t.Properties = append(t.Properties, p)
	}

	for _, ed := range doc.Events {
		e := &ilmodel.EventDef{
			DeclaringType: t,
			Name:          ed.Name,
			Attrs:         ilmodel.MemberAttrs{Public: ed.Public},
		}
		t.Events = append(t.Events, e)
	}

	for _, nd := range doc.Nested {
		child, err := c.createType(nd, t)
		if err != nil {
			return nil, err
		}
		t.NestedTypes = append(t.NestedTypes, child)
	}

	return t, nil
}

func (c *decodeCtx) populateType(doc *typeDoc, t *ilmodel.TypeDef) error {
	var err error

	if doc.Base != nil {
		if t.BaseType, err = c.resolveTypeRef(doc.Base); err != nil {
			return err
		}
	}

	for _, i := range doc.Interfaces {
		ref, err := c.resolveTypeRef(i)
		if err != nil {
			return err
		}
		t.Interfaces = append(t.Interfaces, ref)
	}

	for i, fd := range doc.Fields {
		f := t.Fields[i]
		if f.Type, err = c.resolveTypeRef(fd.Type); err != nil {
			return err
		}
		for _, ad := range fd.Attrs {
			ca, err := c.resolveAttr(ad)
			if err != nil {
				return err
			}
			f.CustomAttrs = append(f.CustomAttrs, ca)
		}
	}

	for i, md := range doc.Methods {
		if err := c.populateMethod(md, t.Methods[i]); err != nil {
			return err
		}
	}

	for i, pd := range doc.Properties {
		p := t.Properties[i]
		if p.Type, err = c.resolveTypeRef(pd.Type); err != nil {
			return err
		}
		if pd.Getter != "" {
			p.Getter = c.methods[t.FullName()+"::"+pd.Getter]
		}
		if pd.Setter != "" {
			p.Setter = c.methods[t.FullName()+"::"+pd.Setter]
		}
	}

	for i, ed := range doc.Events {
		e := t.Events[i]
		if e.Type, err = c.resolveTypeRef(ed.Type); err != nil {
			return err
		}
		if ed.Add != "" {
			e.AddMethod = c.methods[t.FullName()+"::"+ed.Add]
		}
		if ed.Remove != "" {
			e.RemoveMethod = c.methods[t.FullName()+"::"+ed.Remove]
		}
	}

	for _, ad := range doc.Attrs {
		ca, err := c.resolveAttr(ad)
		if err != nil {
			return err
		}
		t.CustomAttrs = append(t.CustomAttrs, ca)
	}

	for i, nd := range doc.Nested {
		if err := c.populateType(nd, t.NestedTypes[i]); err != nil {
			return err
		}
	}

	return nil
}

func (c *decodeCtx) populateMethod(doc *methodDoc, m *ilmodel.MethodDef) error {
	var err error

	if m.ReturnType, err = c.resolveTypeRef(doc.ReturnType); err != nil {
		return err
	}

	for i, pd := range doc.Params {
		p := &ilmodel.ParamDef{
			DeclaringMethod: m,
			Name:            pd.Name,
			Index:           i,
			In:              pd.In,
			Out:             pd.Out,
			Optional:        pd.Optional,
			IsReturn:        pd.IsReturn,
		}
		if p.Type, err = c.resolveTypeRef(pd.Type); err != nil {
			return err
		}
		for _, ad := range pd.Attrs {
			ca, err := c.resolveAttr(ad)
			if err != nil {
				return err
			}
			p.CustomAttrs = append(p.CustomAttrs, ca)
		}
		m.Params = append(m.Params, p)
	}

	for _, ad := range doc.Attrs {
		ca, err := c.resolveAttr(ad)
		if err != nil {
			return err
		}
		m.CustomAttrs = append(m.CustomAttrs, ca)
	}

	if doc.Body == nil {
		return nil
	}

	body := &ilmodel.MethodBody{
		DeclaringMethod: m,
		MaxStack:        doc.Body.MaxStack,
		InitLocals:      doc.Body.InitLocals,
	}
	m.Body = body

	for _, vd := range doc.Body.Variables {
		v := &ilmodel.VariableDef{DeclaringMethod: m, Index: vd.Index}
		if v.Type, err = c.resolveTypeRef(vd.Type); err != nil {
			return err
		}
		body.Variables = append(body.Variables, v)
	}

	// Instructions are allocated first (pass 1 within the body) so branch
	// operands referring forward can resolve by index in pass 2.
	for i, id := range doc.Body.Instrs {
		body.Instrs = append(body.Instrs, &ilmodel.Instr{
			DeclaringBody: body,
			Index:         i,
			Opcode:        decodeOpcode(id.Op),
		})
	}

	for i, id := range doc.Body.Instrs {
		if err := c.populateInstr(id, body, i); err != nil {
			return err
		}
	}

	for _, hd := range doc.Body.Handlers {
		h := &ilmodel.ExceptionHandler{
			DeclaringBody: body,
			Kind:          decodeHandlerKind(hd.Kind),
			TryStart:      body.Instrs[hd.TryStart],
			TryEnd:        body.Instrs[hd.TryEnd],
			HandlerStart:  body.Instrs[hd.HandlerStart],
			HandlerEnd:    body.Instrs[hd.HandlerEnd],
		}
		if hd.CatchType != nil {
			if h.CatchType, err = c.resolveTypeRef(hd.CatchType); err != nil {
				return err
			}
		}
		if hd.Kind == "filter" {
			h.FilterStart = body.Instrs[hd.FilterStart]
		}
		body.ExceptionHandlers = append(body.ExceptionHandlers, h)
	}

	return nil
}

func (c *decodeCtx) populateInstr(doc *instrDoc, body *ilmodel.MethodBody, idx int) error {
	instr := body.Instrs[idx]
	var err error

	switch doc.Operand {
	case "type":
		instr.Op = ilmodel.OperandType
		if instr.TypeOperand, err = c.resolveTypeRef(doc.TypeOperand); err != nil {
			return err
		}
	case "field":
		instr.Op = ilmodel.OperandField
		if instr.FieldOperand, err = c.resolveFieldRef(doc.FieldOperand); err != nil {
			return err
		}
	case "method":
		instr.Op = ilmodel.OperandMethod
		if instr.MethodOperand, err = c.resolveMethodRef(doc.MethodOperand); err != nil {
			return err
		}
	case "param":
		instr.Op = ilmodel.OperandParam
		instr.ParamOperand = body.DeclaringMethod.Params[doc.ParamOperand]
	case "var":
		instr.Op = ilmodel.OperandVar
		instr.VarOperand = body.Variables[doc.VarOperand]
	case "instr":
		instr.Op = ilmodel.OperandInstr
		instr.InstrOperand = body.Instrs[doc.InstrOperand]
	case "instrList":
		instr.Op = ilmodel.OperandInstrList
		for _, i := range doc.InstrList {
			instr.InstrList = append(instr.InstrList, body.Instrs[i])
		}
	case "primitive":
		instr.Op = ilmodel.OperandPrimitive
		instr.Primitive = doc.Primitive
	case "string":
		instr.Op = ilmodel.OperandString
		instr.StringLiteral = doc.StringLiteral
	default:
		instr.Op = ilmodel.OperandNone
	}

	return nil
}

func (c *decodeCtx) resolveTypeRef(doc *typeRefDoc) (*ilmodel.TypeRef, error) {
	if doc == nil {
		return nil, nil
	}

	switch doc.Kind {
	case "basic":
		t, ok := c.types[doc.Ref]
		if !ok {
			return nil, fmt.Errorf("fixtureio: unknown type %q", doc.Ref)
		}
		return ilmodel.BasicRef(t), nil
	case "array":
		elem, err := c.resolveTypeRef(doc.Elem)
		if err != nil {
			return nil, err
		}
		rank := doc.Rank
		if rank == 0 {
			rank = 1
		}
		return ilmodel.ArrayRef(elem, rank), nil
	case "generic-instance":
		def, err := c.resolveTypeRef(doc.GenericDef)
		if err != nil {
			return nil, err
		}
		var args []*ilmodel.TypeRef
		for _, a := range doc.GenericArgs {
			ar, err := c.resolveTypeRef(a)
			if err != nil {
				return nil, err
			}
			args = append(args, ar)
		}
		return ilmodel.GenericInstanceRef(def, args), nil
	case "generic-param":
		var gp *ilmodel.GenericParamDef
		var ok bool
		if doc.OwnerKind == "method" {
			gp, ok = c.methodGens[doc.OwnerKey+"!"+doc.ParamName]
		} else {
			gp, ok = c.typeGens[doc.OwnerKey+"!"+doc.ParamName]
		}
		if !ok {
			return nil, fmt.Errorf("fixtureio: unknown generic parameter %s!%s", doc.OwnerKey, doc.ParamName)
		}
		return ilmodel.GenericParamRef(gp), nil
	case "external":
		return ilmodel.ExternalRef(doc.Module, doc.Name), nil
	default:
		return nil, fmt.Errorf("fixtureio: unknown type ref kind %q", doc.Kind)
	}
}

func (c *decodeCtx) resolveFieldRef(doc *fieldRefDoc) (*ilmodel.FieldRef, error) {
	f, ok := c.fields[doc.DeclaringType+"::"+doc.FieldName]
	if !ok {
		return nil, fmt.Errorf("fixtureio: unknown field %s::%s", doc.DeclaringType, doc.FieldName)
	}

	ref := &ilmodel.FieldRef{Def: f}
	if doc.Override != nil {
		var err error
		if ref.DeclaringType, err = c.resolveTypeRef(doc.Override); err != nil {
			return nil, err
		}
	}
	return ref, nil
}

func (c *decodeCtx) resolveMethodRef(doc *methodRefDoc) (*ilmodel.MethodRef, error) {
	m, ok := c.methods[doc.DeclaringType+"::"+doc.MethodName]
	if !ok {
		return nil, fmt.Errorf("fixtureio: unknown method %s::%s", doc.DeclaringType, doc.MethodName)
	}

	ref := &ilmodel.MethodRef{Def: m}
	if doc.Override != nil {
		var err error
		if ref.DeclaringType, err = c.resolveTypeRef(doc.Override); err != nil {
			return nil, err
		}
	}
	for _, a := range doc.GenericArgs {
		ar, err := c.resolveTypeRef(a)
		if err != nil {
			return nil, err
		}
		ref.GenericArgs = append(ref.GenericArgs, ar)
	}
	return ref, nil
}

func (c *decodeCtx) resolveAttr(doc *attrDoc) (*ilmodel.CustomAttribute, error) {
	attrType, err := c.resolveTypeRef(doc.AttrType)
	if err != nil {
		return nil, err
	}

	ca := &ilmodel.CustomAttribute{AttrType: attrType}
	for _, ad := range doc.Args {
		arg := ilmodel.AttrArg{Primitive: ad.Primitive, String: ad.String}
		switch ad.Kind {
		case "type":
			arg.Kind = ilmodel.ArgType
			if arg.TypeArg, err = c.resolveTypeRef(ad.TypeArg); err != nil {
				return nil, err
			}
		case "string":
			arg.Kind = ilmodel.ArgString
		default:
			arg.Kind = ilmodel.ArgPrimitive
		}
		ca.Args = append(ca.Args, arg)
	}
	return ca, nil
}

func decodeLayout(s string) ilmodel.LayoutKind {
	switch s {
	case "sequential":
		return ilmodel.LayoutSequential
	case "explicit":
		return ilmodel.LayoutExplicit
	default:
		return ilmodel.LayoutAuto
	}
}

func decodeCallingConv(s string) ilmodel.CallingConvention {
	switch s {
	case "hasthis":
		return ilmodel.CallHasThis
	case "explicitthis":
		return ilmodel.CallExplicitThis
	case "vararg":
		return ilmodel.CallVarArg
	default:
		return ilmodel.CallDefault
	}
}

func decodeHandlerKind(s string) ilmodel.ExceptionHandlerKind {
	switch s {
	case "filter":
		return ilmodel.HandlerFilter
	case "finally":
		return ilmodel.HandlerFinally
	case "fault":
		return ilmodel.HandlerFault
	default:
		return ilmodel.HandlerCatch
	}
}

func decodeOpcode(mnemonic string) ilmodel.Opcode {
	for _, op := range []ilmodel.Opcode{
		ilmodel.OpNop, ilmodel.OpLdarg, ilmodel.OpLdloc, ilmodel.OpStloc,
		ilmodel.OpLdfld, ilmodel.OpStfld, ilmodel.OpCall, ilmodel.OpCallVrt,
		ilmodel.OpNewobj, ilmodel.OpLdstr, ilmodel.OpLdcI4, ilmodel.OpBr,
		ilmodel.OpBrfalse, ilmodel.OpBrtrue, ilmodel.OpSwitch, ilmodel.OpRet,
		ilmodel.OpLeave,
	} {
		if op.Mnemonic == mnemonic {
			return op
		}
	}
	return ilmodel.Opcode{Mnemonic: mnemonic}
}
