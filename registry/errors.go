package registry

import (
	"fmt"

	"weave/vgraph"
)

// ErrKind is the closed set of ways the registry's lifecycle gate can be
// violated.
type ErrKind int

const (
	// ErrDoubleInvoke covers every lifecycle violation: adding a target
	// after discovery has closed, looking one up before it has, or closing
	// discovery twice.
	ErrDoubleInvoke ErrKind = iota
)

func (k ErrKind) String() string {
	switch k {
	case ErrDoubleInvoke:
		return "DoubleInvoke"
	default:
		return "Unknown"
	}
}

// Error is the typed error surfaced by this package.
type Error struct {
	Kind    ErrKind
	Vertex  vgraph.Vertex
	Message string
}

func (e *Error) Error() string {
	if e.Vertex.Name() != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Vertex.Name(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrKind, v vgraph.Vertex, msg string) *Error {
	return &Error{Kind: kind, Vertex: v, Message: msg}
}
