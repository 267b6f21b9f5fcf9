package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/reactor/graph"
)

func linkEvaluate(n *graph.Node, fn func(parentChanged bool) bool) {
	n.SetEvaluator(fn)
}

func TestBindRejectsSelfDependency(t *testing.T) {
	g := graph.New(nil)
	a := g.Register(graph.KindComputed, "a")
	_, err := g.Bind(a, []*graph.Node{a})
	var cycleErr *graph.CycleDependencyError
	require.ErrorAs(t, err, &cycleErr)
}

func TestBindRejectsCycle(t *testing.T) {
	g := graph.New(nil)
	a := g.Register(graph.KindComputed, "a")
	b := g.Register(graph.KindComputed, "b")

	_, err := g.Bind(b, []*graph.Node{a})
	require.NoError(t, err)

	_, err = g.Bind(a, []*graph.Node{b})
	var cycleErr *graph.CycleDependencyError
	require.ErrorAs(t, err, &cycleErr)
}

func TestBindDetectsRepeatDependency(t *testing.T) {
	g := graph.New(nil)
	src := g.Register(graph.KindSource, "a")
	mid := g.Register(graph.KindComputed, "A")

	_, err := g.Bind(mid, []*graph.Node{src})
	require.NoError(t, err)

	leaf := g.Register(graph.KindComputed, "f")
	res, err := g.Bind(leaf, []*graph.Node{src, mid})
	require.NoError(t, err)

	assert.True(t, res.Repeats[src], "src is reached via both the direct edge and through mid")
	assert.False(t, res.Repeats[mid])
}

// Linear chain: source -> doubled -> tripled. A write to source propagates
// through both computeds exactly once each.
func TestLinearChainPropagation(t *testing.T) {
	g := graph.New(nil)
	src := g.Register(graph.KindSource, "src")

	srcVal := 1
	doubled := g.Register(graph.KindComputed, "doubled")
	doubledVal := 0
	doubledEvals := 0
	linkEvaluate(doubled, func(changed bool) bool {
		doubledEvals++
		old := doubledVal
		doubledVal = srcVal * 2
		return old != doubledVal
	})
	_, err := g.Bind(doubled, []*graph.Node{src})
	require.NoError(t, err)

	tripled := g.Register(graph.KindComputed, "tripled")
	tripledVal := 0
	tripledEvals := 0
	linkEvaluate(tripled, func(changed bool) bool {
		tripledEvals++
		old := tripledVal
		tripledVal = doubledVal * 3
		return old != tripledVal
	})
	_, err = g.Bind(tripled, []*graph.Node{doubled})
	require.NoError(t, err)

	srcVal = 5
	g.Pulse(src, true)

	assert.Equal(t, 1, doubledEvals)
	assert.Equal(t, 1, tripledEvals)
	assert.Equal(t, 10, doubledVal)
	assert.Equal(t, 30, tripledVal)
}

// Diamond: source feeds two computeds which both feed a third. The joining
// node must evaluate exactly once per pulse (I6).
func TestDiamondEvaluatesJoinOnce(t *testing.T) {
	g := graph.New(nil)
	src := g.Register(graph.KindSource, "src")

	left := g.Register(graph.KindComputed, "left")
	linkEvaluate(left, func(changed bool) bool { return true })
	_, err := g.Bind(left, []*graph.Node{src})
	require.NoError(t, err)

	right := g.Register(graph.KindComputed, "right")
	linkEvaluate(right, func(changed bool) bool { return true })
	_, err = g.Bind(right, []*graph.Node{src})
	require.NoError(t, err)

	join := g.Register(graph.KindComputed, "join")
	joinEvals := 0
	linkEvaluate(join, func(changed bool) bool {
		joinEvals++
		return changed
	})
	res, err := g.Bind(join, []*graph.Node{left, right})
	require.NoError(t, err)
	assert.False(t, res.Repeats[left])
	assert.False(t, res.Repeats[right])

	g.Pulse(src, true)
	assert.Equal(t, 1, joinEvals)
}

func TestCloseCascadesToDanglingObservers(t *testing.T) {
	g := graph.New(nil)
	src := g.Register(graph.KindSource, "src")
	mid := g.Register(graph.KindComputed, "mid")
	linkEvaluate(mid, func(changed bool) bool { return changed })
	_, err := g.Bind(mid, []*graph.Node{src})
	require.NoError(t, err)

	leaf := g.Register(graph.KindComputed, "leaf")
	linkEvaluate(leaf, func(changed bool) bool { return changed })
	_, err = g.Bind(leaf, []*graph.Node{mid})
	require.NoError(t, err)

	g.Close(src)

	assert.True(t, src.Closed())
	assert.True(t, mid.Closed())
	assert.True(t, leaf.Closed())
}

func TestCloseDuringPulseIsDeferred(t *testing.T) {
	g := graph.New(nil)
	src := g.Register(graph.KindSource, "src")
	other := g.Register(graph.KindSource, "other")

	mid := g.Register(graph.KindComputed, "mid")
	linkEvaluate(mid, func(changed bool) bool {
		g.Close(other)
		assert.False(t, other.Closed(), "close issued mid-pulse must be deferred")
		return changed
	})
	_, err := g.Bind(mid, []*graph.Node{src})
	require.NoError(t, err)

	g.Pulse(src, true)
	assert.True(t, other.Closed(), "deferred close runs once the pulse completes")
}

func TestWeakRefInvalidationFiresAtZero(t *testing.T) {
	g := graph.New(nil)
	n := g.Register(graph.KindComputed, "n")
	fired := 0
	n.SetInvalidation(invalidFunc(func(g *graph.Graph, node *graph.Node) { fired++ }))

	n.AddWeakRef()
	n.AddWeakRef()
	n.ReleaseWeakRef(g)
	assert.Equal(t, 0, fired)
	n.ReleaseWeakRef(g)
	assert.Equal(t, 1, fired)
}

type invalidFunc func(g *graph.Graph, n *graph.Node)

func (f invalidFunc) OnInvalid(g *graph.Graph, n *graph.Node) { f(g, n) }
