package cloners

import "weave/ilmodel"

// TypeCloner clones a TypeDef as a new type: nested under ParentTarget, or
// as a top-level type of TargetModule when ParentTarget is nil. The driver
// uses it for nested types; the mixin root itself goes through RootCloner.
type TypeCloner struct {
	Source *ilmodel.TypeDef

	// ParentTarget is the already-created target type this type nests
	// under, or nil for a top-level type.
	ParentTarget *ilmodel.TypeDef

	// TargetModule receives the type when ParentTarget is nil.
	TargetModule *ilmodel.Module
}

func (c *TypeCloner) Create(ctx *Context) (any, error) {
	t := &ilmodel.TypeDef{
		Name:      c.Source.Name,
		Namespace: c.Source.Namespace,
		Attrs:     c.Source.Attrs,
		Layout:    c.Source.Layout,
	}

	if c.ParentTarget != nil {
		c.ParentTarget.AddNestedType(t)
	} else {
		c.TargetModule.AddType(t)
	}

	return t, nil
}

func (c *TypeCloner) Populate(ctx *Context, target any) error {
	t := target.(*ilmodel.TypeDef)

	if c.Source.BaseType != nil {
		base, err := ctx.Importer.ImportType(c.Source.BaseType)
		if err != nil {
			return err
		}
		t.BaseType = base
	}

	for _, i := range c.Source.Interfaces {
		imported, err := ctx.Importer.ImportType(i)
		if err != nil {
			return err
		}
		t.Interfaces = append(t.Interfaces, imported)
	}

	attrs, err := cloneAttrs(ctx, c.Source.CustomAttrs)
	if err != nil {
		return err
	}
	t.CustomAttrs = attrs

	return nil
}

// GenericParameterCloner clones a generic parameter belonging to a type or
// method. Create attaches the new parameter to its owner's already-created
// shell (the driver's creation-order topological sort guarantees a generic
// parameter is only created after its owning type or method), but the
// parameter's constraints are resolved only in Populate, once every other
// vertex the constraints might reference has a target too.
type GenericParameterCloner struct {
	Source *ilmodel.GenericParamDef

	// Owner is the already-created target TypeDef or MethodDef this
	// parameter belongs to.
	Owner any
}

func (c *GenericParameterCloner) Create(ctx *Context) (any, error) {
	gp := &ilmodel.GenericParamDef{
		Name:  c.Source.Name,
		Index: c.Source.Index,
		Owner: c.Owner,
	}

	switch owner := c.Owner.(type) {
	case *ilmodel.TypeDef:
		owner.GenericParams = append(owner.GenericParams, gp)
	case *ilmodel.MethodDef:
		owner.GenericParams = append(owner.GenericParams, gp)
	}

	return gp, nil
}

func (c *GenericParameterCloner) Populate(ctx *Context, target any) error {
	gp := target.(*ilmodel.GenericParamDef)

	for _, constraint := range c.Source.Constraints {
		imported, err := ctx.Importer.ImportType(constraint)
		if err != nil {
			return err
		}
		gp.Constraints = append(gp.Constraints, imported)
	}

	return nil
}
