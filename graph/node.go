package graph

import mapset "github.com/deckarep/golang-set/v2"

// Kind distinguishes the five cell kinds of the data model (spec.md §3).
type Kind uint8

const (
	KindSource Kind = iota
	KindConst
	KindComputed
	KindAction
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindConst:
		return "const"
	case KindComputed:
		return "computed"
	case KindAction:
		return "action"
	case KindField:
		return "field"
	default:
		return "unknown"
	}
}

// TriggerPolicy decides, at a node's visit, whether it should re-notify its
// observers (spec.md §4.6). Any type with a ShouldFire method conforms.
type TriggerPolicy interface {
	ShouldFire(changed bool) bool
}

// InvalidationStrategy decides what happens when a node's weak-reference
// count reaches zero (spec.md §4.7). Any type with an OnInvalid method
// conforms.
type InvalidationStrategy interface {
	OnInvalid(g *Graph, n *Node)
}

// Node is the stable internal identity of a cell. The graph owns every Node
// strongly; callers only ever hold weak references (built on top of the
// AddWeakRef/ReleaseWeakRef count) via the glue layer in package reactor.
type Node struct {
	id       uint64
	name     string
	kind     Kind
	closed   bool
	isAction bool

	// dependents: nodes this node reads from ("what I read").
	dependents mapset.Set[*Node]
	// repeatDeps: subset of dependents reached via more than one path,
	// per the repeat-dependency detection of spec.md §4.2(c).
	repeatDeps mapset.Set[*Node]

	// observers: nodes that read from this node ("who reads me"), kept in
	// attachment order because the propagation protocol fires observers in
	// insertion order (spec.md §4.3(1)).
	observers   []*Node
	observerSet mapset.Set[*Node]

	trigger TriggerPolicy
	invalid InvalidationStrategy

	weakCount int32

	// evaluate recomputes this node's closure given whether any of its
	// dependents changed this pulse, returning whether its own value
	// changed. nil for Source/Const/Field cells, which have no closure.
	evaluate func(parentChanged bool) bool
	// freeze replaces evaluate with a closure returning the current
	// (frozen) value forever; installed by invalidate.FreezeLastValue.
	freeze func()
	// detachField removes this node from the field index; installed for
	// Field sub-cells and invoked by invalidate.FieldClose.
	detachField func()

	// Per-pulse scratch state. Safe because the engine is single-threaded
	// and a pulse always runs to completion before another can start.
	pendingParents   int
	anyParentChanged bool
	lastChanged      bool
	resolvedGen      uint64
}

func newNode(id uint64, name string, kind Kind) *Node {
	return &Node{
		id:          id,
		name:        name,
		kind:        kind,
		isAction:    kind == KindAction,
		dependents:  mapset.NewThreadUnsafeSet[*Node](),
		repeatDeps:  mapset.NewThreadUnsafeSet[*Node](),
		observerSet: mapset.NewThreadUnsafeSet[*Node](),
	}
}

// ID returns the node's stable graph identity.
func (n *Node) ID() uint64 { return n.id }

// Name returns the node's debug name, which may be empty.
func (n *Node) Name() string { return n.name }

// SetName sets the node's debug name.
func (n *Node) SetName(name string) { n.name = name }

// Kind returns the cell kind this node backs.
func (n *Node) Kind() Kind { return n.kind }

// Closed reports whether the node has been closed.
func (n *Node) Closed() bool { return n.closed }

// SetTrigger installs the node's trigger policy.
func (n *Node) SetTrigger(t TriggerPolicy) { n.trigger = t }

// SetInvalidation installs the node's invalidation strategy.
func (n *Node) SetInvalidation(s InvalidationStrategy) { n.invalid = s }

// SetEvaluator installs the recomputation closure for Computed/Action nodes.
func (n *Node) SetEvaluator(f func(parentChanged bool) bool) { n.evaluate = f }

// SetFreeze installs the callback invoked by FreezeLastValue.
func (n *Node) SetFreeze(f func()) { n.freeze = f }

// SetDetachField installs the callback invoked by FieldClose.
func (n *Node) SetDetachField(f func()) { n.detachField = f }

// Freeze runs the node's freeze callback, if any.
func (n *Node) Freeze() {
	if n.freeze != nil {
		n.freeze()
	}
}

// ShouldFire asks the node's trigger policy whether it should notify its
// observers given changed; a node with no trigger policy installed falls
// back to firing exactly when changed.
func (n *Node) ShouldFire(changed bool) bool {
	if n.trigger != nil {
		return n.trigger.ShouldFire(changed)
	}
	return changed
}

// Recompute forces the node's evaluate closure to run right now, outside of
// a pulse, storing whatever changed-flag it returns in lastChanged. It does
// not notify observers; callers that need propagation should use Pulse.
// Nodes with no evaluate closure (Source/Const/Field) treat this as a
// no-op that preserves parentChanged.
func (n *Node) Recompute(parentChanged bool) bool {
	if n.evaluate != nil {
		n.lastChanged = n.evaluate(parentChanged)
	} else {
		n.lastChanged = parentChanged
	}
	return n.lastChanged
}

// DetachField runs the node's field-detach callback, if any.
func (n *Node) DetachField() {
	if n.detachField != nil {
		n.detachField()
	}
}

// DependsOn reports whether n currently reads from t directly.
func (n *Node) DependsOn(t *Node) bool { return n.dependents.Contains(t) }

// IsRepeatDependency reports whether n reaches t via more than one path.
func (n *Node) IsRepeatDependency(t *Node) bool { return n.repeatDeps.Contains(t) }

// Dependents returns the current dependents of n (read-only snapshot).
func (n *Node) Dependents() []*Node { return n.dependents.ToSlice() }

// Observers returns the current observers of n in attachment order.
func (n *Node) Observers() []*Node {
	out := make([]*Node, len(n.observers))
	copy(out, n.observers)
	return out
}

// AddWeakRef increments the node's weak-reference count.
func (n *Node) AddWeakRef() { n.weakCount++ }

// ReleaseWeakRef decrements the node's weak-reference count; when it drops
// to zero the node's invalidation strategy runs exactly once (I4, spec.md
// §8 "weak-count liveness").
func (n *Node) ReleaseWeakRef(g *Graph) {
	n.weakCount--
	if n.weakCount == 0 && !n.closed {
		if n.invalid != nil {
			n.invalid.OnInvalid(g, n)
		}
	}
}
