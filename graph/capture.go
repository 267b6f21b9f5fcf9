package graph

import mapset "github.com/deckarep/golang-set/v2"

// BeginCapture pushes a new capture frame, used by capture-style calc(f)
// bindings (spec.md §4.4) to record every node read while f runs.
func (g *Graph) BeginCapture() {
	g.captureStack = append(g.captureStack, &captureFrame{
		reads: mapset.NewThreadUnsafeSet[*Node](),
	})
}

// EndCapture pops the current capture frame and returns the nodes read
// during it, in no particular order (Bind sorts out ordering concerns via
// its own repeat-dependency walk).
func (g *Graph) EndCapture() []*Node {
	n := len(g.captureStack)
	if n == 0 {
		return nil
	}
	frame := g.captureStack[n-1]
	g.captureStack = g.captureStack[:n-1]
	return frame.reads.ToSlice()
}

// RecordRead notes that node was read by the currently-executing
// capture-style closure, if any capture is active. Called by every handle
// read path (Get, GetRef, GetUpdate) regardless of binding style, so a read
// performed outside of any capture is simply a no-op.
func (g *Graph) RecordRead(node *Node) {
	if len(g.captureStack) == 0 {
		return
	}
	g.captureStack[len(g.captureStack)-1].reads.Add(node)
}

// Capturing reports whether a capture-style closure is currently executing,
// letting handle read paths distinguish "ordinary read" from "dependency
// capture in progress" the way original_source's reg_flg thread_local does.
func (g *Graph) Capturing() bool { return len(g.captureStack) > 0 }
