package reactor

import (
	"github.com/flowgraph/reactor/cell"
	"github.com/flowgraph/reactor/expr"
	"github.com/flowgraph/reactor/field"
	"github.com/flowgraph/reactor/graph"
	"github.com/flowgraph/reactor/invalidate"
	"github.com/flowgraph/reactor/trigger"
)

// Var creates a Source cell holding initial (spec.md §6 `var(v)`).
func Var[T comparable](eng *Engine, initial T) *Handle[T] {
	st := cell.NewState(eng.g, graph.KindSource, "", initial, cell.EqualSlot[T]())
	st.Node.SetTrigger(trigger.OnChange{})
	st.Node.SetInvalidation(invalidate.Close{})
	return newHandle(eng, st.Node, st)
}

// ConstVar creates a Const cell holding initial (spec.md §6 `constVar(v)`),
// grounded on original_source's dedicated constMeta constructor.
func ConstVar[T comparable](eng *Engine, initial T) *Handle[T] {
	st := cell.NewState(eng.g, graph.KindConst, "", initial, cell.EqualSlot[T]())
	st.Node.SetInvalidation(invalidate.Close{})
	return newHandle(eng, st.Node, st)
}

func nodesOf(leaves []any) []*graph.Node {
	out := make([]*graph.Node, 0, len(leaves))
	for _, l := range leaves {
		if n, ok := l.(*graph.Node); ok {
			out = append(out, n)
		}
	}
	return out
}

// Calc creates a Computed cell from a capture-style closure: f is run once
// with dependency capture active, and every handle read during that run
// becomes a bound dependency (spec.md §4.4 "capture-style"). Subsequent
// recomputation simply re-runs f, since it closes over the same handles.
func Calc[T comparable](eng *Engine, f func() T) (*Handle[T], error) {
	var zero T
	st := cell.NewState(eng.g, graph.KindComputed, "", zero, cell.EqualSlot[T]())
	node := st.Node
	node.SetTrigger(trigger.OnChange{})

	eng.g.BeginCapture()
	initial := f()
	leaves := eng.g.EndCapture()

	if _, err := eng.g.Bind(node, leaves); err != nil {
		return nil, err
	}
	node.SetEvaluator(func(parentChanged bool) bool { return st.Slot.Set(f()) })
	node.SetFreeze(func() { node.SetEvaluator(func(bool) bool { return false }) })
	node.SetInvalidation(invalidate.Close{})
	st.Slot.Set(initial)
	return newHandle(eng, node, st), nil
}

// Calc1 creates a Computed cell from an arguments-style closure over one
// explicit dependency (spec.md §4.4 "arguments-style"), grounded on the
// arity-generated Computed1 family in the teacher's rocket package.
func Calc1[A, T comparable](eng *Engine, a *Handle[A], f func(A) T) (*Handle[T], error) {
	var zero T
	st := cell.NewState(eng.g, graph.KindComputed, "", zero, cell.EqualSlot[T]())
	node := st.Node
	node.SetTrigger(trigger.OnChange{})

	if _, err := eng.g.Bind(node, []*graph.Node{a.node()}); err != nil {
		return nil, err
	}
	node.SetEvaluator(func(parentChanged bool) bool { return st.Slot.Set(f(a.Get())) })
	node.SetFreeze(func() { node.SetEvaluator(func(bool) bool { return false }) })
	node.SetInvalidation(invalidate.Close{})
	st.Slot.Set(f(a.Get()))
	return newHandle(eng, node, st), nil
}

// Calc2 is Calc1's two-dependency counterpart.
func Calc2[A, B, T comparable](eng *Engine, a *Handle[A], b *Handle[B], f func(A, B) T) (*Handle[T], error) {
	var zero T
	st := cell.NewState(eng.g, graph.KindComputed, "", zero, cell.EqualSlot[T]())
	node := st.Node
	node.SetTrigger(trigger.OnChange{})

	if _, err := eng.g.Bind(node, []*graph.Node{a.node(), b.node()}); err != nil {
		return nil, err
	}
	node.SetEvaluator(func(parentChanged bool) bool { return st.Slot.Set(f(a.Get(), b.Get())) })
	node.SetFreeze(func() { node.SetEvaluator(func(bool) bool { return false }) })
	node.SetInvalidation(invalidate.Close{})
	st.Slot.Set(f(a.Get(), b.Get()))
	return newHandle(eng, node, st), nil
}

// Action creates an Action cell from a capture-style side-effecting
// closure: no return value, no change-detected storage, always re-runs
// when notified (default trigger Always, matching "invoke side effect and
// stop" in spec.md §4.3).
func Action(eng *Engine, f func()) (*Handle[struct{}], error) {
	st := cell.NewState(eng.g, graph.KindAction, "", struct{}{}, nil)
	node := st.Node
	node.SetTrigger(trigger.Always{})

	eng.g.BeginCapture()
	f()
	leaves := eng.g.EndCapture()

	if _, err := eng.g.Bind(node, leaves); err != nil {
		return nil, err
	}
	node.SetEvaluator(func(parentChanged bool) bool { f(); return true })
	node.SetInvalidation(invalidate.Close{})
	return newHandle(eng, node, st), nil
}

// Action1 is Action's arguments-style, single-dependency counterpart.
func Action1[A comparable](eng *Engine, a *Handle[A], f func(A)) (*Handle[struct{}], error) {
	st := cell.NewState(eng.g, graph.KindAction, "", struct{}{}, nil)
	node := st.Node
	node.SetTrigger(trigger.Always{})

	if _, err := eng.g.Bind(node, []*graph.Node{a.node()}); err != nil {
		return nil, err
	}
	node.SetEvaluator(func(parentChanged bool) bool { f(a.Get()); return true })
	node.SetInvalidation(invalidate.Close{})
	f(a.Get())
	return newHandle(eng, node, st), nil
}

// Expr creates a Computed cell from an arithmetic expression tree built by
// package expr (spec.md §4.5): every leaf handle in the tree is captured as
// a dependency, and recomputation folds the tree.
func Expr[T expr.Number](eng *Engine, tree expr.Node[T]) (*Handle[T], error) {
	var zero T
	st := cell.NewState(eng.g, graph.KindComputed, "", zero, cell.EqualSlot[T]())
	node := st.Node
	node.SetTrigger(trigger.OnChange{})

	if _, err := eng.g.Bind(node, nodesOf(tree.Leaves())); err != nil {
		return nil, err
	}
	node.SetEvaluator(func(parentChanged bool) bool { return st.Slot.Set(tree.Eval()) })
	node.SetFreeze(func() { node.SetEvaluator(func(bool) bool { return false }) })
	node.SetInvalidation(invalidate.Close{})
	st.Slot.Set(tree.Eval())
	return newHandle(eng, node, st), nil
}

// Field creates a Field sub-cell registered under owner's aggregate
// identity (spec.md §4.8). owner must be a pointer to the aggregate the
// sub-cell belongs to.
func Field[T comparable](eng *Engine, owner any, initial T) *Handle[T] {
	id := field.IdentityOf(owner)
	st := cell.NewState(eng.g, graph.KindField, "", initial, cell.EqualSlot[T]())
	st.Node.SetTrigger(trigger.OnChange{})
	st.Node.SetInvalidation(invalidate.FieldClose{})
	eng.fields.Register(id, st.Node)

	h := newHandle(eng, st.Node, st)
	h.hasField = true
	h.fieldID = id
	node := st.Node
	st.Node.SetDetachField(func() { eng.fields.Unregister(id, node) })
	return h
}

// WrapAggregate creates a Source cell holding owner itself and attaches it
// as the field-subsystem container for owner's aggregate identity: a write
// to any of owner's Field sub-cells will now also fire this handle's
// observers, after the sub-cell's own (spec.md §4.8 ordering).
func WrapAggregate[A any](eng *Engine, owner *A) *Handle[*A] {
	id := field.IdentityOf(owner)
	eq := func(prev, next *A) bool { return prev == next }
	st := cell.NewState(eng.g, graph.KindSource, "", owner, eq)
	st.Node.SetTrigger(trigger.OnChange{})
	st.Node.SetInvalidation(invalidate.FieldClose{})
	eng.fields.AttachContainer(id, st.Node)

	h := newHandle(eng, st.Node, st)
	h.hasField = true
	h.fieldID = id
	st.Node.SetDetachField(func() { eng.fields.DetachContainer(h.fieldID) })
	return h
}
