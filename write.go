package reactor

import (
	"github.com/flowgraph/reactor/expr"
	"github.com/flowgraph/reactor/field"
	"github.com/flowgraph/reactor/graph"
)

// Set writes v to a Source or Field handle. A Source write triggers exactly
// one pulse per spec.md §4.3; a Field write pulses the sub-cell and then,
// if the aggregate is wrapped, its container (field.Index.NotifyWrite).
// Writing a Const or Computed or Action handle panics —
// those cell kinds have no public write path.
//
// Writing a Source handle that wraps an aggregate (built by WrapAggregate)
// re-points the field index to the new aggregate's identity before the
// pulse runs, so sub-cell observers see the rebound registry (spec.md §4.8,
// invariant I7).
func (h *Handle[T]) Set(v T) {
	if h.n.Closed() {
		panic(&graph.NullHandleAccessError{Node: h.n.Name()})
	}
	switch h.n.Kind() {
	case graph.KindSource:
		if h.hasField {
			newID := field.IdentityOf(any(v))
			if newID != h.fieldID {
				h.eng.fields.Rebind(h.fieldID, newID)
				h.fieldID = newID
			}
		}
		changed := h.state.Slot.Set(v)
		h.eng.g.Pulse(h.n, h.n.ShouldFire(changed))
	case graph.KindField:
		changed := h.state.Slot.Set(v)
		h.eng.fields.NotifyWrite(h.eng.g, h.fieldID, h.n, h.n.ShouldFire(changed))
	default:
		panic("reactor: Set is only valid on Source and Field handles")
	}
}

// AddAssign performs `h += delta` for an arithmetic Source handle.
func AddAssign[T expr.Number](h *Handle[T], delta T) { h.Set(h.Get() + delta) }

// SubAssign performs `h -= delta`.
func SubAssign[T expr.Number](h *Handle[T], delta T) { h.Set(h.Get() - delta) }

// MulAssign performs `h *= factor`.
func MulAssign[T expr.Number](h *Handle[T], factor T) { h.Set(h.Get() * factor) }

// DivAssign performs `h /= divisor`.
func DivAssign[T expr.Number](h *Handle[T], divisor T) { h.Set(h.Get() / divisor) }

// Increment performs prefix `++h`.
func Increment[T expr.Number](h *Handle[T]) { h.Set(h.Get() + 1) }

// Decrement performs prefix `--h`.
func Decrement[T expr.Number](h *Handle[T]) { h.Set(h.Get() - 1) }
