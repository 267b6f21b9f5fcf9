// Package field implements the aggregate field subsystem of spec.md §4.8: a
// user aggregate becomes reactive by embedding Field sub-cells, which
// register themselves under the aggregate's stable identity and, once the
// aggregate is wrapped in a Source cell, fire both their own observers and
// the enclosing container's observers on write. Grounded on
// original_source's FieldGraph (reaction.h's field()/FieldGraph::getInstance,
// resource.h's setField, concept.h's FieldStructBase/HasFieldCC): Index plays
// FieldGraph's role of mapping an aggregate's identity to its registered
// sub-cells.
package field

import (
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/flowgraph/reactor/graph"
)

// AggregateID is the stable integer identity of a user aggregate, derived
// from its storage address the same way pkg/flimsy's types.go turns a
// symbolic key into a stable int64 via xxhash.Sum64String.
type AggregateID uint64

// IdentityOf derives the AggregateID for the aggregate pointed to by owner.
// owner must be a pointer; its address is stable for the aggregate's
// lifetime, which is exactly the stability spec.md §4.8 requires.
func IdentityOf(owner any) AggregateID {
	v := reflect.ValueOf(owner)
	if v.Kind() != reflect.Ptr {
		panic("field: IdentityOf requires a pointer")
	}
	addr := uint64(v.Pointer())
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(addr >> (8 * i))
	}
	return AggregateID(xxhash.Sum64(buf[:]))
}

// Index tracks every Field sub-cell registered under each aggregate
// identity, and the container node (if any) the aggregate is currently
// wrapped in.
type Index struct {
	byAggregate map[AggregateID][]*graph.Node
	containers  map[AggregateID]*graph.Node
}

// NewIndex creates an empty field index. One Index is owned per Graph.
func NewIndex() *Index {
	return &Index{
		byAggregate: make(map[AggregateID][]*graph.Node),
		containers:  make(map[AggregateID]*graph.Node),
	}
}

// Register records that node is a Field sub-cell of the aggregate
// identified by id.
func (idx *Index) Register(id AggregateID, node *graph.Node) {
	idx.byAggregate[id] = append(idx.byAggregate[id], node)
}

// Unregister removes node from the aggregate's sub-cell list, used when a
// Field cell is closed (directly, or cascaded from FieldClose).
func (idx *Index) Unregister(id AggregateID, node *graph.Node) {
	list := idx.byAggregate[id]
	for i, n := range list {
		if n == node {
			idx.byAggregate[id] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// AttachContainer records that the aggregate identified by id is now
// wrapped by the Source node container: a write to any of the aggregate's
// sub-cells must also fire container's observers, after the sub-cell's own
// observers (spec.md §4.8 ordering).
func (idx *Index) AttachContainer(id AggregateID, container *graph.Node) {
	idx.containers[id] = container
}

// DetachContainer removes the container back-pointer, used when the
// enclosing Source cell is closed.
func (idx *Index) DetachContainer(id AggregateID) {
	delete(idx.containers, id)
}

// Rebind re-points every sub-cell registered under oldID to newID, and
// moves the container back-pointer along with them. This is called before
// any observer fires when the enclosing Source's aggregate is reassigned
// (copy/move), per spec.md §4.8 and invariant I7.
func (idx *Index) Rebind(oldID, newID AggregateID) {
	if oldID == newID {
		return
	}
	if subs, ok := idx.byAggregate[oldID]; ok {
		idx.byAggregate[newID] = append(idx.byAggregate[newID], subs...)
		delete(idx.byAggregate, oldID)
	}
	if c, ok := idx.containers[oldID]; ok {
		idx.containers[newID] = c
		delete(idx.containers, oldID)
	}
}

// Container returns the node currently wrapping the aggregate identified by
// id, or nil if it isn't wrapped in any container.
func (idx *Index) Container(id AggregateID) *graph.Node {
	return idx.containers[id]
}

// SubCells returns the sub-cells currently registered under id.
func (idx *Index) SubCells(id AggregateID) []*graph.Node {
	return idx.byAggregate[id]
}

// NotifyWrite propagates a write to the sub-cell node registered under id:
// the sub-cell's own observers fire first via g.Pulse, then, if the
// aggregate is wrapped in a container, the container's observers fire as a
// second pulse rooted at the container (spec.md §4.8 ordering).
func (idx *Index) NotifyWrite(g *graph.Graph, id AggregateID, subCell *graph.Node, changed bool) {
	g.Pulse(subCell, changed)
	if container := idx.containers[id]; container != nil {
		g.Pulse(container, changed)
	}
}
