package reactor

import "github.com/flowgraph/reactor/graph"

// Rebind replaces a Computed handle's recomputation closure with f, capturing
// f's dependencies the same way Calc does. The new binding goes through the
// same self-dependency/cycle/repeat-dependency checks as construction
// (spec.md §4.2); on CycleDependency the handle keeps its prior binding and
// closure.
//
// Because Handle is a Go generic type, the closure's return type is fixed
// at T by the compiler — there is no way to call Rebind with a closure
// returning a different type, which is how this codebase resolves the
// ValueType rebind Open Question (strict equality, not convertibility; see
// SPEC_FULL.md §4).
func (h *Handle[T]) Rebind(f func() T) error {
	if h.n.Kind() != graph.KindComputed {
		panic("reactor: Rebind is only valid on Computed handles")
	}

	h.eng.g.BeginCapture()
	v := f()
	leaves := h.eng.g.EndCapture()

	if _, err := h.eng.g.Bind(h.n, leaves); err != nil {
		return err
	}
	h.n.SetEvaluator(func(parentChanged bool) bool { return h.state.Slot.Set(f()) })
	h.state.Slot.Set(v)
	return nil
}
