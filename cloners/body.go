package cloners

import "weave/ilmodel"

// InstructionCloner clones a single IL instruction. Create allocates the
// shell and links it positionally into the body's instruction list, since
// other instructions' branch operands are resolved by identity, not index,
// during Populate. Populate rewrites whichever operand the opcode carries:
// type/field/method operands go through the Root-Import Engine, while
// parameter/variable/instruction operands are resolved directly against
// the registry, since they are structural siblings within the same cloned
// body rather than references crossing module boundaries.
type InstructionCloner struct {
	Source       *ilmodel.Instr
	ParentTarget *ilmodel.MethodDef
}

func (c *InstructionCloner) Create(ctx *Context) (any, error) {
	i := &ilmodel.Instr{
		DeclaringBody: c.ParentTarget.Body,
		Index:         c.Source.Index,
		Op:            c.Source.Op,
		Opcode:        c.Source.Opcode,
	}
	c.ParentTarget.Body.Instrs = append(c.ParentTarget.Body.Instrs, i)
	return i, nil
}

func (c *InstructionCloner) Populate(ctx *Context, target any) error {
	i := target.(*ilmodel.Instr)

	switch c.Source.Op {
	case ilmodel.OperandType:
		imported, err := ctx.Importer.ImportType(c.Source.TypeOperand)
		if err != nil {
			return err
		}
		i.TypeOperand = imported

	case ilmodel.OperandField:
		imported, err := ctx.Importer.ImportField(c.Source.FieldOperand)
		if err != nil {
			return err
		}
		i.FieldOperand = imported

	case ilmodel.OperandMethod:
		imported, err := ctx.Importer.ImportMethod(c.Source.MethodOperand)
		if err != nil {
			return err
		}
		i.MethodOperand = imported

	case ilmodel.OperandParam:
		target, err := resolveSibling(ctx, c.Source.ParamOperand)
		if err != nil {
			return err
		}
		i.ParamOperand = target.(*ilmodel.ParamDef)

	case ilmodel.OperandVar:
		target, err := resolveSibling(ctx, c.Source.VarOperand)
		if err != nil {
			return err
		}
		i.VarOperand = target.(*ilmodel.VariableDef)

	case ilmodel.OperandInstr:
		target, err := resolveSibling(ctx, c.Source.InstrOperand)
		if err != nil {
			return err
		}
		i.InstrOperand = target.(*ilmodel.Instr)

	case ilmodel.OperandInstrList:
		for _, srcTarget := range c.Source.InstrList {
			target, err := resolveSibling(ctx, srcTarget)
			if err != nil {
				return err
			}
			i.InstrList = append(i.InstrList, target.(*ilmodel.Instr))
		}

	case ilmodel.OperandPrimitive:
		i.Primitive = c.Source.Primitive

	case ilmodel.OperandString:
		i.StringLiteral = c.Source.StringLiteral
	}

	return nil
}

// resolveSibling looks up the target already cloned for a source object
// that shares the same method body (a parameter, a variable, or another
// instruction). Every such object has its own vertex, so a missing
// registration means the body was cloned inconsistently, which the driver
// treats as an unresolved declaring type since there is no more specific
// taxonomy entry for a structural sibling gone missing.
func resolveSibling(ctx *Context, src any) (any, error) {
	target, ok, err := ctx.TargetFor(src)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &SiblingUnresolvedError{}
	}
	return target, nil
}

// SiblingUnresolvedError is returned when an instruction operand or an
// exception handler boundary points at a parameter, variable, or
// instruction with no registered clone, or when a property or event
// accessor method has no registered clone.
type SiblingUnresolvedError struct{}

func (e *SiblingUnresolvedError) Error() string {
	return "UnresolvedDeclaringType: referenced parameter, variable, instruction, or accessor has no cloned target"
}

// ExceptionHandlerCloner clones a protected region. Its instruction-pointer
// fields are resolved in Populate, after every instruction in the body has
// a target, rather than in Create.
type ExceptionHandlerCloner struct {
	Source       *ilmodel.ExceptionHandler
	ParentTarget *ilmodel.MethodDef
}

func (c *ExceptionHandlerCloner) Create(ctx *Context) (any, error) {
	h := &ilmodel.ExceptionHandler{
		DeclaringBody: c.ParentTarget.Body,
		Kind:          c.Source.Kind,
	}
	c.ParentTarget.Body.ExceptionHandlers = append(c.ParentTarget.Body.ExceptionHandlers, h)
	return h, nil
}

func (c *ExceptionHandlerCloner) Populate(ctx *Context, target any) error {
	h := target.(*ilmodel.ExceptionHandler)

	resolve := func(src *ilmodel.Instr) (*ilmodel.Instr, error) {
		if src == nil {
			return nil, nil
		}
		t, err := resolveSibling(ctx, src)
		if err != nil {
			return nil, err
		}
		return t.(*ilmodel.Instr), nil
	}

	var err error
	if h.TryStart, err = resolve(c.Source.TryStart); err != nil {
		return err
	}
	if h.TryEnd, err = resolve(c.Source.TryEnd); err != nil {
		return err
	}
	if h.HandlerStart, err = resolve(c.Source.HandlerStart); err != nil {
		return err
	}
	if h.HandlerEnd, err = resolve(c.Source.HandlerEnd); err != nil {
		return err
	}
	if h.FilterStart, err = resolve(c.Source.FilterStart); err != nil {
		return err
	}

	if c.Source.Kind == ilmodel.HandlerCatch && c.Source.CatchType != nil {
		catchType, err := ctx.Importer.ImportType(c.Source.CatchType)
		if err != nil {
			return err
		}
		h.CatchType = catchType
	}

	return nil
}
