// Package report renders a human-readable dump of a live dependency graph
// for cmd/reactorctl's inspect command, using quicktemplate's writer runtime
// directly the way qtc's own generated code does.
package report

import "github.com/flowgraph/reactor/graph"

// NodeRow is one line of a graph snapshot: a node's identity plus its
// current edge counts, read once up front so rendering never touches the
// live graph's internals.
type NodeRow struct {
	ID        uint64
	Name      string
	Kind      string
	Observers int
	Depends   int
	Closed    bool
}

// Snapshot captures the node set of g at a point in time.
type Snapshot struct {
	Rows []NodeRow
}

// Capture builds a Snapshot from every node currently registered on g.
func Capture(g *graph.Graph) Snapshot {
	nodes := g.Nodes()
	rows := make([]NodeRow, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, NodeRow{
			ID:        n.ID(),
			Name:      n.Name(),
			Kind:      n.Kind().String(),
			Observers: len(n.Observers()),
			Depends:   len(n.Dependents()),
			Closed:    n.Closed(),
		})
	}
	return Snapshot{Rows: rows}
}
