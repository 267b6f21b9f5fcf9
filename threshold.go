package reactor

import (
	"github.com/flowgraph/reactor/invalidate"
	"github.com/flowgraph/reactor/trigger"
)

// UseLastValue switches a Computed handle's invalidation strategy to
// FreezeLastValue: when its last weak reference is released, it keeps its
// current value forever instead of closing (spec.md §4.7, seed scenario 6
// "last-value strategy on death").
func UseLastValue[T comparable](h *Handle[T]) {
	h.n.SetInvalidation(invalidate.FreezeLastValue{})
}

// SetThreshold installs (or replaces) a Threshold trigger policy on a
// Computed or Action handle (spec.md §4.6/§6 "set threshold predicate").
// repeatDependent should be true when pred reads a handle that is itself a
// repeat dependency of h — see SPEC_FULL.md §4's resolution of the
// Threshold + repeat-dependency open question.
func SetThreshold[T comparable](h *Handle[T], pred trigger.Predicate, repeatDependent bool) {
	h.n.SetTrigger(trigger.NewThreshold(pred, repeatDependent, h.eng.g.Log()))
}
