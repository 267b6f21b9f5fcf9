package invalidate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/reactor/graph"
	"github.com/flowgraph/reactor/invalidate"
)

func TestCloseStrategyClosesNode(t *testing.T) {
	g := graph.New(nil)
	n := g.Register(graph.KindComputed, "n")
	n.SetInvalidation(invalidate.Close{})

	n.AddWeakRef()
	n.ReleaseWeakRef(g)
	assert.True(t, n.Closed())
}

func TestKeepComputingLeavesNodeOpen(t *testing.T) {
	g := graph.New(nil)
	n := g.Register(graph.KindComputed, "n")
	n.SetInvalidation(invalidate.KeepComputing{})

	n.AddWeakRef()
	n.ReleaseWeakRef(g)
	assert.False(t, n.Closed())
}

func TestFreezeLastValueInstallsFrozenEvaluator(t *testing.T) {
	g := graph.New(nil)
	n := g.Register(graph.KindComputed, "n")
	frozen := false
	n.SetFreeze(func() {
		frozen = true
		n.SetEvaluator(func(parentChanged bool) bool { return false })
	})
	n.SetInvalidation(invalidate.FreezeLastValue{})

	n.AddWeakRef()
	n.ReleaseWeakRef(g)
	require.True(t, frozen)
	assert.False(t, n.Closed())
}

func TestFieldCloseDetachesThenCloses(t *testing.T) {
	g := graph.New(nil)
	n := g.Register(graph.KindField, "field")
	detached := false
	n.SetDetachField(func() { detached = true })
	n.SetInvalidation(invalidate.FieldClose{})

	n.AddWeakRef()
	n.ReleaseWeakRef(g)
	assert.True(t, detached)
	assert.True(t, n.Closed())
}
