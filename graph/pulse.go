package graph

import mapset "github.com/deckarep/golang-set/v2"

// Pulse propagates a change starting at root through its transitive
// observers, evaluating every reached node at most once (I6) regardless of
// how many paths converge on it (the diamond scenario of spec.md §8
// "diamond with repeat").
//
// The algorithm is a two-phase mark/sweep over the reached subgraph rather
// than a literal port of original_source's wait_observers deferral list:
// wait_observers only defers a single diamond join, whereas a pulse that
// fans out through several levels of repeat-joins needs every node's full
// in-degree (restricted to the reached subgraph) known up front before any
// of them can be safely evaluated. Phase one (mark) computes that in-degree
// by a breadth-first walk of the observer edges; phase two (sweep) is a
// Kahn's-algorithm topological drain that evaluates a node exactly when all
// of its reached parents have been visited, folding together every parent's
// changed/unchanged verdict first.
func (g *Graph) Pulse(root *Node, changed bool) {
	g.pulseDepth++
	defer func() {
		g.pulseDepth--
		if g.pulseDepth == 0 {
			g.flushDeferredCloses()
		}
	}()

	reached := mapset.NewThreadUnsafeSet[*Node]()
	order := make([]*Node, 0, 16)
	queue := []*Node{root}
	reached.Add(root)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, obs := range n.observers {
			if !reached.Contains(obs) {
				reached.Add(obs)
				queue = append(queue, obs)
			}
		}
	}

	for _, n := range order {
		n.pendingParents = 0
		n.anyParentChanged = false
	}
	for _, n := range order {
		for _, obs := range n.observers {
			if reached.Contains(obs) {
				obs.pendingParents++
			}
		}
	}

	root.lastChanged = changed
	ready := []*Node{root}
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]

		// Every reached node's closure re-evaluates unconditionally; a
		// node's trigger policy only gates whether its own observers see
		// it as changed (below), not whether it recomputes. A Threshold
		// cell still recomputes on every reach, it just reports unchanged
		// to its observers until its predicate says otherwise.
		if n != root {
			if n.evaluate != nil {
				n.lastChanged = n.evaluate(n.anyParentChanged)
			} else {
				n.lastChanged = n.anyParentChanged
			}
		}

		fire := n.lastChanged
		if n.trigger != nil {
			fire = n.trigger.ShouldFire(n.lastChanged)
		}

		for _, obs := range n.observers {
			if !reached.Contains(obs) {
				continue
			}
			if fire {
				obs.anyParentChanged = true
			}
			obs.pendingParents--
			if obs.pendingParents == 0 {
				ready = append(ready, obs)
			}
		}
	}
}
