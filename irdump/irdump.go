// Package irdump renders the shape of a woven type as an LLVM-flavored IR
// listing: one function declaration per method, one global per field. It
// is a debug aid for inspecting what a weave produced, not a real
// compilation backend — a woven .NET method has no LLVM-representable
// body, so only declarations are emitted.
package irdump

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"

	"weave/ilmodel"
)

// Dump renders t's fields and methods as a textual LLVM module listing.
func Dump(t *ilmodel.TypeDef) string {
	mod := ir.NewModule()
	var unsupported []string

	for _, f := range t.Fields {
		llTyp, ok := convType(f.Type)
		if !ok {
			unsupported = append(unsupported, "; unsupported field type: "+t.FullName()+"::"+f.Name)
			continue
		}
		mod.NewGlobalDef(globalName(t, f.Name), constant.NewZeroInitializer(llTyp))
	}

	for _, m := range t.Methods {
		retTyp, ok := convType(m.ReturnType)
		if !ok {
			unsupported = append(unsupported, "; unsupported signature: "+t.FullName()+"::"+m.Name+" (return type)")
			continue
		}

		params := make([]*ir.Param, 0, len(m.Params))
		signatureOK := true
		for _, p := range m.Params {
			pTyp, ok := convType(p.Type)
			if !ok {
				signatureOK = false
				break
			}
			params = append(params, ir.NewParam(p.Name, pTyp))
		}
		if !signatureOK {
			unsupported = append(unsupported, "; unsupported signature: "+t.FullName()+"::"+m.Name+" (parameter type)")
			continue
		}

		mod.NewFunc(funcName(t, m.Name), retTyp, params...)
	}

	var b strings.Builder
	b.WriteString(mod.String())
	for _, line := range unsupported {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func globalName(t *ilmodel.TypeDef, member string) string {
	return sanitize(t.FullName()) + "." + member
}

func funcName(t *ilmodel.TypeDef, member string) string {
	return sanitize(t.FullName()) + "." + member
}

func sanitize(s string) string {
	replacer := strings.NewReplacer(".", "_", "+", "_", "!", "_", "<", "_", ">", "_", ",", "_")
	return replacer.Replace(s)
}
