package cloners

import "weave/ilmodel"

// FieldCloner clones a field.
type FieldCloner struct {
	Source       *ilmodel.FieldDef
	ParentTarget *ilmodel.TypeDef
}

func (c *FieldCloner) Create(ctx *Context) (any, error) {
	f := &ilmodel.FieldDef{
		DeclaringType: c.ParentTarget,
		Name:          c.Source.Name,
		Attrs:         c.Source.Attrs,
		Constant:      cloneConstant(c.Source.Constant),
		Marshal:       cloneMarshal(c.Source.Marshal),
	}
	c.ParentTarget.Fields = append(c.ParentTarget.Fields, f)
	return f, nil
}

func (c *FieldCloner) Populate(ctx *Context, target any) error {
	f := target.(*ilmodel.FieldDef)

	fieldType, err := ctx.Importer.ImportType(c.Source.Type)
	if err != nil {
		return err
	}
	f.Type = fieldType

	attrs, err := cloneAttrs(ctx, c.Source.CustomAttrs)
	if err != nil {
		return err
	}
	f.CustomAttrs = attrs

	return nil
}

// MethodSignatureCloner clones a method's declaration: its shape and
// attributes, plus the shell of its body (if any) so that generic
// parameters, parameters, variables, and instructions have somewhere to
// attach during their own Create calls. Populate resolves the return type
// and attributes only; the body's contents are handled by
// VariableCloner, InstructionCloner, and ExceptionHandlerCloner.
type MethodSignatureCloner struct {
	Source       *ilmodel.MethodDef
	ParentTarget *ilmodel.TypeDef
}

func (c *MethodSignatureCloner) Create(ctx *Context) (any, error) {
	m := &ilmodel.MethodDef{
		DeclaringType: c.ParentTarget,
		Name:          c.Source.Name,
		Attrs:         c.Source.Attrs,
		CallingConv:   c.Source.CallingConv,
	}
	c.ParentTarget.Methods = append(c.ParentTarget.Methods, m)

	if c.Source.Body != nil {
		m.Body = &ilmodel.MethodBody{
			DeclaringMethod: m,
			MaxStack:        c.Source.Body.MaxStack,
			InitLocals:      c.Source.Body.InitLocals,
		}
	}

	return m, nil
}

func (c *MethodSignatureCloner) Populate(ctx *Context, target any) error {
	m := target.(*ilmodel.MethodDef)

	returnType, err := ctx.Importer.ImportType(c.Source.ReturnType)
	if err != nil {
		return err
	}
	m.ReturnType = returnType

	attrs, err := cloneAttrs(ctx, c.Source.CustomAttrs)
	if err != nil {
		return err
	}
	m.CustomAttrs = attrs

	return nil
}

// ParameterCloner clones a single method parameter.
type ParameterCloner struct {
	Source       *ilmodel.ParamDef
	ParentTarget *ilmodel.MethodDef
}

func (c *ParameterCloner) Create(ctx *Context) (any, error) {
	p := &ilmodel.ParamDef{
		DeclaringMethod: c.ParentTarget,
		Name:            c.Source.Name,
		Index:           c.Source.Index,
		In:              c.Source.In,
		Out:             c.Source.Out,
		Optional:        c.Source.Optional,
		IsReturn:        c.Source.IsReturn,
		Constant:        cloneConstant(c.Source.Constant),
		Marshal:         cloneMarshal(c.Source.Marshal),
	}
	c.ParentTarget.Params = append(c.ParentTarget.Params, p)
	return p, nil
}

func (c *ParameterCloner) Populate(ctx *Context, target any) error {
	p := target.(*ilmodel.ParamDef)

	paramType, err := ctx.Importer.ImportType(c.Source.Type)
	if err != nil {
		return err
	}
	p.Type = paramType

	attrs, err := cloneAttrs(ctx, c.Source.CustomAttrs)
	if err != nil {
		return err
	}
	p.CustomAttrs = attrs

	return nil
}

// VariableCloner clones a local variable of a method body.
type VariableCloner struct {
	Source       *ilmodel.VariableDef
	ParentTarget *ilmodel.MethodDef
}

func (c *VariableCloner) Create(ctx *Context) (any, error) {
	v := &ilmodel.VariableDef{
		DeclaringMethod: c.ParentTarget,
		Index:           c.Source.Index,
	}
	c.ParentTarget.Body.Variables = append(c.ParentTarget.Body.Variables, v)
	return v, nil
}

func (c *VariableCloner) Populate(ctx *Context, target any) error {
	v := target.(*ilmodel.VariableDef)

	varType, err := ctx.Importer.ImportType(c.Source.Type)
	if err != nil {
		return err
	}
	v.Type = varType

	return nil
}
