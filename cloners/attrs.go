package cloners

import "weave/ilmodel"

// cloneAttrs root-imports a set of custom attributes. Attributes have no
// children of their own and nothing else in the graph can reference one
// directly, so they carry no separate vertex or cloner kind; they are
// cloned inline by whichever owning cloner populates them.
func cloneAttrs(ctx *Context, attrs []*ilmodel.CustomAttribute) ([]*ilmodel.CustomAttribute, error) {
	if len(attrs) == 0 {
		return nil, nil
	}

	cloned := make([]*ilmodel.CustomAttribute, len(attrs))
	for i, a := range attrs {
		attrType, err := ctx.Importer.ImportType(a.AttrType)
		if err != nil {
			return nil, err
		}

		args := make([]ilmodel.AttrArg, len(a.Args))
		for j, arg := range a.Args {
			out := ilmodel.AttrArg{Kind: arg.Kind, Primitive: arg.Primitive, String: arg.String}
			if arg.Kind == ilmodel.ArgType {
				typeArg, err := ctx.Importer.ImportType(arg.TypeArg)
				if err != nil {
					return nil, err
				}
				out.TypeArg = typeArg
			}
			args[j] = out
		}

		cloned[i] = &ilmodel.CustomAttribute{AttrType: attrType, Args: args}
	}

	return cloned, nil
}

// filterAttrs drops attributes named in filter, by their source-side type
// name. Used only for the mixin root's own attributes, per the
// custom-attribute-filter option: everything else is propagated as-is.
func filterAttrs(attrs []*ilmodel.CustomAttribute, filter []string) []*ilmodel.CustomAttribute {
	if len(filter) == 0 {
		return attrs
	}

	blocked := make(map[string]struct{}, len(filter))
	for _, f := range filter {
		blocked[f] = struct{}{}
	}

	var kept []*ilmodel.CustomAttribute
	for _, a := range attrs {
		if _, skip := blocked[ilmodel.AttrTypeName(a.AttrType)]; skip {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func cloneConstant(c *ilmodel.ConstValue) *ilmodel.ConstValue {
	if c == nil {
		return nil
	}
	return &ilmodel.ConstValue{Value: c.Value}
}

func cloneMarshal(m *ilmodel.MarshalInfo) *ilmodel.MarshalInfo {
	if m == nil {
		return nil
	}
	return &ilmodel.MarshalInfo{NativeType: m.NativeType}
}
