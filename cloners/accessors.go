package cloners

import "weave/ilmodel"

// PropertyCloner clones a property. Its accessor methods are cloned
// independently as Method vertices; Populate links each accessor the source
// property has to that accessor's clone, and fails with
// SiblingUnresolvedError if the accessor has no clone.
type PropertyCloner struct {
	Source       *ilmodel.PropertyDef
	ParentTarget *ilmodel.TypeDef
}

func (c *PropertyCloner) Create(ctx *Context) (any, error) {
	p := &ilmodel.PropertyDef{
		DeclaringType: c.ParentTarget,
		Name:          c.Source.Name,
		Attrs:         c.Source.Attrs,
	}
	c.ParentTarget.Properties = append(c.ParentTarget.Properties, p)
	return p, nil
}

func (c *PropertyCloner) Populate(ctx *Context, target any) error {
	p := target.(*ilmodel.PropertyDef)

	propType, err := ctx.Importer.ImportType(c.Source.Type)
	if err != nil {
		return err
	}
	p.Type = propType

	if c.Source.Getter != nil {
		getter, err := resolveAccessor(ctx, c.Source.Getter)
		if err != nil {
			return err
		}
		p.Getter = getter
	}
	if c.Source.Setter != nil {
		setter, err := resolveAccessor(ctx, c.Source.Setter)
		if err != nil {
			return err
		}
		p.Setter = setter
	}

	attrs, err := cloneAttrs(ctx, c.Source.CustomAttrs)
	if err != nil {
		return err
	}
	p.CustomAttrs = attrs

	return nil
}

// EventCloner clones an event.
type EventCloner struct {
	Source       *ilmodel.EventDef
	ParentTarget *ilmodel.TypeDef
}

func (c *EventCloner) Create(ctx *Context) (any, error) {
	e := &ilmodel.EventDef{
		DeclaringType: c.ParentTarget,
		Name:          c.Source.Name,
		Attrs:         c.Source.Attrs,
	}
	c.ParentTarget.Events = append(c.ParentTarget.Events, e)
	return e, nil
}

func (c *EventCloner) Populate(ctx *Context, target any) error {
	e := target.(*ilmodel.EventDef)

	eventType, err := ctx.Importer.ImportType(c.Source.Type)
	if err != nil {
		return err
	}
	e.Type = eventType

	if c.Source.AddMethod != nil {
		add, err := resolveAccessor(ctx, c.Source.AddMethod)
		if err != nil {
			return err
		}
		e.AddMethod = add
	}
	if c.Source.RemoveMethod != nil {
		remove, err := resolveAccessor(ctx, c.Source.RemoveMethod)
		if err != nil {
			return err
		}
		e.RemoveMethod = remove
	}

	attrs, err := cloneAttrs(ctx, c.Source.CustomAttrs)
	if err != nil {
		return err
	}
	e.CustomAttrs = attrs

	return nil
}

func resolveAccessor(ctx *Context, src *ilmodel.MethodDef) (*ilmodel.MethodDef, error) {
	target, ok, err := ctx.TargetFor(src)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &SiblingUnresolvedError{}
	}
	return target.(*ilmodel.MethodDef), nil
}
