package cloners

import "weave/ilmodel"

// RootCloner is the Cloner for the mixin source root itself. Unlike every
// other vertex, the root does not get a freshly allocated shell: it names
// an already-existing type in the target module, and root-import redirects
// every reference to the source root at that pre-existing type directly
// (see rootimport.Importer.SourceRoot/TargetRoot). RootCloner exists only
// so the driver can treat the root vertex uniformly with every other
// vertex in the creation and population passes.
//
// The one thing it does populate is the root's own custom attributes,
// merged onto the pre-existing target rather than replacing anything
// already there, filtered by the custom-attribute-filter configuration
// option.
type RootCloner struct {
	Source      *ilmodel.TypeDef
	Target      any
	FilterAttrs []string
}

func (c *RootCloner) Create(ctx *Context) (any, error) {
	return c.Target, nil
}

func (c *RootCloner) Populate(ctx *Context, target any) error {
	t, ok := target.(*ilmodel.TypeDef)
	if !ok {
		return nil
	}

	kept := filterAttrs(c.Source.CustomAttrs, c.FilterAttrs)
	cloned, err := cloneAttrs(ctx, kept)
	if err != nil {
		return err
	}
	t.CustomAttrs = append(t.CustomAttrs, cloned...)

	return nil
}
