package cell

import "github.com/flowgraph/reactor/graph"

// State bundles a graph.Node's identity with the typed Slot backing it. It
// is the common shape Source, Const, Computed, Action, and Field cells all
// share in the root reactor package — only the evaluate closure installed
// on Node and the constructor that builds it differ between kinds.
type State[T any] struct {
	Node *graph.Node
	Slot *Slot[T]
}

// NewState registers a node of the given kind on g and pairs it with a
// freshly created slot holding initial.
func NewState[T any](g *graph.Graph, kind graph.Kind, name string, initial T, eq func(prev, next T) bool) *State[T] {
	n := g.Register(kind, name)
	return &State[T]{Node: n, Slot: NewSlot(initial, eq)}
}

// Get reads the slot's current value, recording the read against any
// capture-style closure currently executing on g.
func (s *State[T]) Get(g *graph.Graph) T {
	g.RecordRead(s.Node)
	return s.Slot.Get()
}

// GetRef borrows the slot's storage without copying, still recording the
// read for dependency capture.
func (s *State[T]) GetRef(g *graph.Graph) *T {
	g.RecordRead(s.Node)
	return s.Slot.Ref()
}
