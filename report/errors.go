package report

import (
	"fmt"

	"weave/cloners"
	"weave/registry"
	"weave/rootimport"
	"weave/toposort"
	"weave/vgraph"
)

// Kind is the closed set of fatal error categories a weave can abort with.
type Kind int

const (
	InvalidGraph Kind = iota
	ParentCycle
	CyclicDependency
	UnknownGenericParameter
	UnmaterializedGenericParameter
	UnresolvedDeclaringType
	SignatureMatchMissing
	DoubleInvoke
)

func (k Kind) String() string {
	switch k {
	case InvalidGraph:
		return "InvalidGraph"
	case ParentCycle:
		return "ParentCycle"
	case CyclicDependency:
		return "CyclicDependency"
	case UnknownGenericParameter:
		return "UnknownGenericParameter"
	case UnmaterializedGenericParameter:
		return "UnmaterializedGenericParameter"
	case UnresolvedDeclaringType:
		return "UnresolvedDeclaringType"
	case SignatureMatchMissing:
		return "SignatureMatchMissing"
	case DoubleInvoke:
		return "DoubleInvoke"
	default:
		return "Unknown"
	}
}

// WeaveError is the single error type a weave ever aborts with. Every
// lower-level package (vgraph, toposort, registry, rootimport, cloners)
// has its own typed error; WeaveError is what the driver surfaces to
// callers once it has classified one of those into the closed taxonomy.
type WeaveError struct {
	Kind  Kind
	FQN   string
	Cause error
}

func (e *WeaveError) Error() string {
	if e.FQN == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.FQN, e.Cause)
}

func (e *WeaveError) Unwrap() error {
	return e.Cause
}

// Wrap classifies a lower-level package error into a *WeaveError. Errors
// that are already a *WeaveError pass through unchanged. Anything the
// switch doesn't recognize is left as-is, since it is a programming error
// in the driver rather than a taxonomy member.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	switch e := err.(type) {
	case *WeaveError:
		return e

	case *vgraph.Error:
		kind := InvalidGraph
		if e.Kind == vgraph.ErrParentCycle {
			kind = ParentCycle
		}
		return &WeaveError{Kind: kind, FQN: e.Vertex.Name(), Cause: e}

	case *toposort.CycleError:
		return &WeaveError{Kind: CyclicDependency, Cause: e}

	case *registry.Error:
		return &WeaveError{Kind: DoubleInvoke, FQN: e.Vertex.Name(), Cause: e}

	case *rootimport.Error:
		kind := UnresolvedDeclaringType
		switch e.Kind {
		case rootimport.ErrUnknownGenericParameter:
			kind = UnknownGenericParameter
		case rootimport.ErrUnmaterializedGenericParameter:
			kind = UnmaterializedGenericParameter
		case rootimport.ErrSignatureMatchMissing:
			kind = SignatureMatchMissing
		}
		return &WeaveError{Kind: kind, FQN: e.FQN, Cause: e}

	case *cloners.SiblingUnresolvedError:
		return &WeaveError{Kind: UnresolvedDeclaringType, Cause: e}

	default:
		return err
	}
}
