package irdump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"weave/ilmodel"
	"weave/irdump"
)

func TestDumpEmitsGlobalsAndFuncs(t *testing.T) {
	host := &ilmodel.TypeDef{Namespace: "Acme.Widgets", Name: "Widget"}

	host.Fields = append(host.Fields, &ilmodel.FieldDef{
		DeclaringType: host,
		Name:          "count",
		Type:          ilmodel.ExternalRef("mscorlib", "System.Int32"),
	})

	host.Methods = append(host.Methods, &ilmodel.MethodDef{
		DeclaringType: host,
		Name:          "Tick",
		ReturnType:    ilmodel.ExternalRef("mscorlib", "System.Void"),
	})

	out := irdump.Dump(host)
	assert.Contains(t, out, "Acme_Widgets_Widget.count")
	assert.Contains(t, out, "Acme_Widgets_Widget.Tick")
	assert.False(t, strings.Contains(out, "unsupported"))
}

func TestDumpFallsBackOnUnsupportedSignature(t *testing.T) {
	host := &ilmodel.TypeDef{Namespace: "Acme.Widgets", Name: "Widget"}

	host.Methods = append(host.Methods, &ilmodel.MethodDef{
		DeclaringType: host,
		Name:          "WeirdOperand",
		ReturnType:    ilmodel.ExternalRef("mscorlib", "System.Reflection.Emit.OpCode"),
	})

	out := irdump.Dump(host)
	assert.Contains(t, out, "; unsupported signature")
	assert.Contains(t, out, "WeirdOperand")
}
