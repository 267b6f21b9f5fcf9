package reactor

import (
	"github.com/flowgraph/reactor/cell"
	"github.com/flowgraph/reactor/field"
	"github.com/flowgraph/reactor/graph"
)

// Dependency is the minimal contract a Handle exposes to binding code that
// doesn't need to know its value type — used when collecting explicit
// argument lists for arguments-style calc/action constructors.
type Dependency interface {
	node() *graph.Node
}

// Handle is the caller-facing weak reference to a cell (spec.md GLOSSARY).
// Its zero value is not usable; obtain one from Var, ConstVar, Calc, Action,
// Expr, or Field. Each Handle holds one weak reference: Clone increments the
// cell's weak-reference count and Release decrements it, matching spec.md
// §9's "weak handles with a counter inside the strong cell" design note.
// Copying a *Handle[T] pointer shares its reference and does not change
// the count.
type Handle[T comparable] struct {
	eng   *Engine
	n     *graph.Node
	state *cell.State[T]

	hasField bool
	fieldID  field.AggregateID
}

func newHandle[T comparable](eng *Engine, n *graph.Node, state *cell.State[T]) *Handle[T] {
	n.AddWeakRef()
	return &Handle[T]{eng: eng, n: n, state: state}
}

// Clone returns a second weak handle to the same cell, incrementing its
// weak-reference count. Use this instead of sharing a *Handle[T] when two
// independent owners each need their own invalidation lifetime.
func (h *Handle[T]) Clone() *Handle[T] {
	h.n.AddWeakRef()
	return &Handle[T]{eng: h.eng, n: h.n, state: h.state, hasField: h.hasField, fieldID: h.fieldID}
}

// Release drops this handle's weak reference, running the cell's
// invalidation strategy if this was the last one (spec.md §4.7).
func (h *Handle[T]) Release() {
	h.n.ReleaseWeakRef(h.eng.g)
}

func (h *Handle[T]) node() *graph.Node { return h.n }

// Dep returns the handle's node identity as an opaque value, satisfying
// expr.Readable for use as an expression-tree leaf.
func (h *Handle[T]) Dep() any { return h.n }

// Value reads the handle's current value, satisfying expr.Readable.
func (h *Handle[T]) Value() T { return h.Get() }

// Get reads the current value, recording the read against any active
// capture-style closure.
func (h *Handle[T]) Get() T {
	if h.n.Closed() {
		panic(&graph.NullHandleAccessError{Node: h.n.Name()})
	}
	return h.state.Get(h.eng.g)
}

// GetRef borrows the stored value without copying.
func (h *Handle[T]) GetRef() *T {
	if h.n.Closed() {
		panic(&graph.NullHandleAccessError{Node: h.n.Name()})
	}
	return h.state.GetRef(h.eng.g)
}

// GetUpdate forces the cell fresh — recomputing a Computed/Action cell's
// closure right now, without propagating to its observers — and returns
// the resulting value. Source/Const/Field cells have no closure to force,
// so GetUpdate is equivalent to Get for them. Grounded on original_source's
// getUpdate()/evaluate() pair (dataSource.h). The engine itself never calls
// it; a Threshold predicate may call it to read a fresh value.
func (h *Handle[T]) GetUpdate() T {
	if h.n.Closed() {
		panic(&graph.NullHandleAccessError{Node: h.n.Name()})
	}
	h.n.Recompute(true)
	return h.state.Get(h.eng.g)
}

// Valid reports whether the handle's referent is still open, the engine's
// truthiness/poll-validity operation (spec.md §6).
func (h *Handle[T]) Valid() bool { return !h.n.Closed() }

// Name returns the cell's debug name.
func (h *Handle[T]) Name() string { return h.n.Name() }

// SetName sets the cell's debug name.
func (h *Handle[T]) SetName(name string) { h.n.SetName(name) }

// Close removes the cell from the graph, cascading to every
// observer-transitive cell, whether or not it still has other live
// dependents (spec.md §4.2(d)).
func (h *Handle[T]) Close() { h.eng.g.Close(h.n) }
