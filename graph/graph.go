package graph

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/flowgraph/reactor/internal/reactorlog"
)

// Graph is the dependency-graph singleton for one logical thread of
// execution. It owns every Node strongly and is never safe to share across
// goroutines (spec.md §5) — callers construct one Graph per goroutine, the
// same shape the teacher's ReactiveSystem types use.
type Graph struct {
	log *reactorlog.Logger

	nextID uint64
	nodes  map[uint64]*Node

	// captureStack supports nested capture-style calc(f) bindings: the top
	// frame records every node read while the current closure runs.
	captureStack []*captureFrame

	pulseDepth    int
	deferredClose []*Node
}

type captureFrame struct {
	reads mapset.Set[*Node]
}

// New creates an empty graph. log may be nil, in which case diagnostics go
// to reactorlog.Default.
func New(log *reactorlog.Logger) *Graph {
	if log == nil {
		log = reactorlog.Default
	}
	return &Graph{
		log:   log,
		nodes: make(map[uint64]*Node),
	}
}

// Register creates and returns a new node of the given kind, owned by g.
func (g *Graph) Register(kind Kind, name string) *Node {
	g.nextID++
	n := newNode(g.nextID, name, kind)
	g.nodes[n.id] = n
	return n
}

// wouldCycle reports whether adding an edge src -> dst (src depends on dst)
// would create a cycle, using the classic visited/on-stack DFS described in
// spec.md §4.2(b): a proposed edge is rejected if walking dst's existing
// data-dependency edges ever reaches back into the recursion stack, which
// for a fresh proposed edge collapses to "does dst's transitive closure
// reach src". A self-edge (src == dst) is always a cycle.
func (g *Graph) wouldCycle(src, dst *Node) bool {
	if src == dst {
		return true
	}
	visited := mapset.NewThreadUnsafeSet[*Node]()
	var dfs func(n *Node) bool
	dfs = func(n *Node) bool {
		if n == src {
			return true
		}
		if visited.Contains(n) {
			return false
		}
		visited.Add(n)
		for _, d := range n.dependents.ToSlice() {
			if dfs(d) {
				return true
			}
		}
		return false
	}
	return dfs(dst)
}

// reachesWithExtra reports whether start reaches target by walking existing
// dependency edges, plus one hypothetical extra edge start->extra used to
// probe a proposed-but-not-yet-installed binding. This backs the
// repeat-dependency test of spec.md §4.2(c): when binding src to a list of
// new dependents, a given dependent t is a repeat dependency if src already
// reaches t via some other dependent it is being bound to.
func reachesWithExtra(start, target *Node, extra *Node) bool {
	if start == target {
		return true
	}
	visited := mapset.NewThreadUnsafeSet[*Node]()
	var dfs func(n *Node) bool
	dfs = func(n *Node) bool {
		if n == target {
			return true
		}
		if visited.Contains(n) {
			return false
		}
		visited.Add(n)
		if n == start && extra != nil {
			if dfs(extra) {
				return true
			}
		}
		for _, d := range n.dependents.ToSlice() {
			if dfs(d) {
				return true
			}
		}
		return false
	}
	return dfs(start)
}

// BindResult reports, per newly-bound dependent, whether it was a repeat
// dependency (spec.md §4.2(c)) so the caller can pick the evaluation mode
// (Threshold.repeatDependent, in particular) for that edge.
type BindResult struct {
	Repeats map[*Node]bool
}

// Bind replaces node's dependent set with deps, after validating every
// proposed edge for self-dependency and cycles (spec.md §4.2(a)/(b)). Action
// nodes are exempt from the cycle walk as data-dependency targets, mirroring
// observerNode.h's split of data vs action edges, but Action itself can
// still depend on data cells like any observer.
//
// On success, node's old dependents/observers links are torn down and the
// new ones installed; on failure node's bindings are left untouched.
func (g *Graph) Bind(node *Node, deps []*Node) (*BindResult, error) {
	for _, d := range deps {
		if d.kind != KindAction && g.wouldCycle(node, d) {
			return nil, &CycleDependencyError{Source: node.name, Target: d.name}
		}
	}

	res := &BindResult{Repeats: make(map[*Node]bool, len(deps))}
	for i, d := range deps {
		repeat := false
		for j, o := range deps {
			if j == i {
				continue
			}
			if o == d {
				repeat = true
				break
			}
			if reachesWithExtra(node, d, o) {
				repeat = true
				break
			}
		}
		if !repeat {
			// Also check whether an already-installed dependent reaches d.
			for _, existing := range node.dependents.ToSlice() {
				if reachesWithExtra(existing, d, nil) {
					repeat = true
					break
				}
			}
		}
		res.Repeats[d] = repeat
	}

	g.unbindAll(node)
	for _, d := range deps {
		node.dependents.Add(d)
		if !d.observerSet.Contains(node) {
			d.observerSet.Add(node)
			d.observers = append(d.observers, node)
		}
		if res.Repeats[d] {
			node.repeatDeps.Add(d)
		}
	}
	return res, nil
}

// unbindAll tears down node's outgoing dependency edges without validating a
// replacement set; used internally by Bind and Close.
func (g *Graph) unbindAll(node *Node) {
	for _, d := range node.dependents.ToSlice() {
		d.observerSet.Remove(node)
		for i, o := range d.observers {
			if o == node {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				break
			}
		}
	}
	node.dependents.Clear()
	node.repeatDeps.Clear()
}

// Close removes node from the graph, cascading to every observer-transitive
// node reachable from it and only those (spec.md §4.2(d), invariant I5): a
// node's observers are always closed in turn, recursively, regardless of
// whether they still have other live dependents, matching
// original_source/observerNode.h::closeNode's unconditional recursive close
// over both its data and action observers. If called while a pulse is in
// progress, the close is deferred until the pulse completes (third Open
// Question in spec.md §9).
func (g *Graph) Close(node *Node) {
	if node.closed {
		return
	}
	if g.pulseDepth > 0 {
		g.deferredClose = append(g.deferredClose, node)
		return
	}
	g.closeNow(node)
}

func (g *Graph) closeNow(node *Node) {
	if node.closed {
		return
	}
	node.closed = true
	observers := append([]*Node(nil), node.observers...)
	g.unbindAll(node)
	for _, d := range node.dependents.ToSlice() {
		d.observerSet.Remove(node)
	}
	node.dependents.Clear()
	delete(g.nodes, node.id)

	for _, obs := range observers {
		if obs.closed {
			continue
		}
		obs.dependents.Remove(node)
		g.closeNow(obs)
	}
}

func (g *Graph) flushDeferredCloses() {
	for len(g.deferredClose) > 0 {
		pending := g.deferredClose
		g.deferredClose = nil
		for _, n := range pending {
			g.closeNow(n)
		}
	}
}

// Nodes returns every node currently registered on the graph, in no
// particular order. Used by introspection tooling (cmd/reactorctl inspect).
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// Log exposes the graph's logger to sibling packages that need to report
// diagnostics (trigger.Threshold's repeat-dependency notice, in particular).
func (g *Graph) Log() *reactorlog.Logger { return g.log }
