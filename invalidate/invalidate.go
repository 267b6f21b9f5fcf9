// Package invalidate implements the InvalidationStrategy interface defined
// by package graph: what happens to a node when its last weak reference is
// released (spec.md §4.7).
package invalidate

import "github.com/flowgraph/reactor/graph"

// Close tears the node down immediately, cascading to every
// observer-transitive node, grounded on original_source's
// DirectFailureStrategy (closeNode on the ObserverGraph).
type Close struct{}

func (Close) OnInvalid(g *graph.Graph, n *graph.Node) {
	g.Close(n)
}

// KeepComputing leaves the node exactly as it is: it keeps evaluating and
// notifying observers even though no live handle refers to it anymore,
// grounded on original_source's ContinueWithExpressionStrategy (an explicit
// no-op handleInvalid).
type KeepComputing struct{}

func (KeepComputing) OnInvalid(g *graph.Graph, n *graph.Node) {}

// FreezeLastValue replaces the node's evaluate closure with one that always
// returns its current (now permanently frozen) value, grounded on
// original_source's UseLastValidValueStrategy, which swaps the node for a
// plain DataSource holding the last computed arguments. A Go evaluate
// closure can't be swapped for a literal data source without knowing T, so
// Node.Freeze is the seam: package reactor installs the concrete freeze
// closure when it builds the node.
type FreezeLastValue struct{}

func (FreezeLastValue) OnInvalid(g *graph.Graph, n *graph.Node) {
	n.Freeze()
}

// FieldClose detaches a Field sub-cell from its aggregate's field index and
// then closes it like Close, so a destroyed container can't leave stale
// sub-cell entries pointing at freed aggregates (spec.md §4.8, "teardown").
// Grounded on original_source's own FieldStrategy (dataSource.h, used as the
// InvStrategy of reaction.h/resource.h's Field/FieldGraph machinery): this
// codebase's field index plays the role of FieldGraph, and the detachField
// seam package reactor installs on a node is this strategy's teardown step.
type FieldClose struct{}

func (FieldClose) OnInvalid(g *graph.Graph, n *graph.Node) {
	n.DetachField()
	g.Close(n)
}
