package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/reactor/field"
	"github.com/flowgraph/reactor/graph"
)

type point struct{ X, Y int }

func TestIdentityOfIsStablePerPointer(t *testing.T) {
	p := &point{X: 1, Y: 2}
	id1 := field.IdentityOf(p)
	id2 := field.IdentityOf(p)
	assert.Equal(t, id1, id2)

	q := &point{X: 1, Y: 2}
	assert.NotEqual(t, id1, field.IdentityOf(q))
}

func TestNotifyWriteFiresSubCellThenContainer(t *testing.T) {
	g := graph.New(nil)
	idx := field.NewIndex()

	p := &point{X: 1, Y: 2}
	id := field.IdentityOf(p)

	sub := g.Register(graph.KindField, "x")
	idx.Register(id, sub)

	container := g.Register(graph.KindSource, "container")
	idx.AttachContainer(id, container)

	var order []string

	subObserver := g.Register(graph.KindComputed, "subObserver")
	subObserver.SetEvaluator(func(changed bool) bool {
		order = append(order, "sub")
		return changed
	})
	_, err := g.Bind(subObserver, []*graph.Node{sub})
	require.NoError(t, err)

	containerObserver := g.Register(graph.KindComputed, "containerObserver")
	containerObserver.SetEvaluator(func(changed bool) bool {
		order = append(order, "container")
		return changed
	})
	_, err = g.Bind(containerObserver, []*graph.Node{container})
	require.NoError(t, err)

	idx.NotifyWrite(g, id, sub, true)

	assert.Equal(t, []string{"sub", "container"}, order)
}

func TestRebindMovesSubCellsAndContainer(t *testing.T) {
	g := graph.New(nil)
	idx := field.NewIndex()

	oldID := field.AggregateID(1)
	newID := field.AggregateID(2)

	sub := g.Register(graph.KindField, "x")
	idx.Register(oldID, sub)
	container := g.Register(graph.KindSource, "container")
	idx.AttachContainer(oldID, container)

	idx.Rebind(oldID, newID)

	assert.Empty(t, idx.SubCells(oldID))
	assert.Equal(t, []*graph.Node{sub}, idx.SubCells(newID))
	assert.Nil(t, idx.Container(oldID))
	assert.Equal(t, container, idx.Container(newID))
}
