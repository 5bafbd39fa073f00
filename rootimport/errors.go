package rootimport

import "fmt"

// ErrKind is the closed set of ways root-import can fail.
type ErrKind int

const (
	// ErrUnknownGenericParameter is returned when a generic parameter's
	// owner cannot be found in the vertex map at all.
	ErrUnknownGenericParameter ErrKind = iota

	// ErrUnmaterializedGenericParameter is returned when a generic
	// parameter's owner is a known vertex but its cloner has not yet run,
	// so no target owner exists to index into.
	ErrUnmaterializedGenericParameter

	// ErrUnresolvedDeclaringType is returned when a field or method
	// reference's declaring type cannot be imported.
	ErrUnresolvedDeclaringType

	// ErrSignatureMatchMissing is returned when no member on the resolved
	// target type matches the source member: by name for a field, under the
	// substituted-string equality oracle for a method.
	ErrSignatureMatchMissing
)

func (k ErrKind) String() string {
	switch k {
	case ErrUnknownGenericParameter:
		return "UnknownGenericParameter"
	case ErrUnmaterializedGenericParameter:
		return "UnmaterializedGenericParameter"
	case ErrUnresolvedDeclaringType:
		return "UnresolvedDeclaringType"
	case ErrSignatureMatchMissing:
		return "SignatureMatchMissing"
	default:
		return "Unknown"
	}
}

// Error is the typed error surfaced by this package. FQN names the
// offending reference in the substitution-oracle string form.
type Error struct {
	Kind ErrKind
	FQN  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.FQN)
}

func newError(kind ErrKind, fqn string) *Error {
	return &Error{Kind: kind, FQN: fqn}
}
