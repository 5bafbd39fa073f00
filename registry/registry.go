// Package registry is the Cloner Registry: the map from a source vertex to
// the target object its cloner produced, gated by a one-shot discovery
// lifecycle. While discovery is open, cloners may add targets as they
// materialize them but nothing may be looked up yet, since a lookup during
// discovery could observe a partially built registry and silently return a
// stale answer. Once every cloner has registered its shell,
// SetAllClonersAdded flips the gate; from then on additions are forbidden
// and lookups are answered from a fully populated table.
//
// This mirrors the global-symbol-table discipline of a single-pass
// compiler front end, adapted to a two-phase (open, then closed) gate
// rather than an incremental resolve-as-you-go table, since a weave's
// creation pass must fully finish before any populate call may safely
// import a mixin-mapped reference.
package registry

import "weave/vgraph"

// Registry is the Cloner Registry described above. It is not safe for
// concurrent use; a weave is single-threaded.
type Registry struct {
	targets map[vgraph.Vertex]any
	closed  bool
}

// New returns a Registry with discovery open.
func New() *Registry {
	return &Registry{targets: make(map[vgraph.Vertex]any)}
}

// Add records the target object produced for source. It fails with
// DoubleInvoke if discovery has already been closed.
func (r *Registry) Add(source vgraph.Vertex, target any) error {
	if r.closed {
		return newError(ErrDoubleInvoke, source, "cannot add a target after discovery has been closed")
	}
	r.targets[source] = target
	return nil
}

// SetAllClonersAdded closes discovery. It is a one-shot operation: calling
// it a second time fails with DoubleInvoke.
func (r *Registry) SetAllClonersAdded() error {
	if r.closed {
		return newError(ErrDoubleInvoke, vgraph.Vertex{}, "discovery has already been closed")
	}
	r.closed = true
	return nil
}

// Closed reports whether discovery has been closed.
func (r *Registry) Closed() bool {
	return r.closed
}

// TryGetTargetFor looks up the target registered for source. It fails with
// DoubleInvoke if discovery is still open, since lookups before every
// cloner has registered would risk observing a partial table.
func (r *Registry) TryGetTargetFor(source vgraph.Vertex) (any, bool, error) {
	if !r.closed {
		return nil, false, newError(ErrDoubleInvoke, source, "cannot look up a target while discovery is still open")
	}
	target, ok := r.targets[source]
	return target, ok, nil
}
