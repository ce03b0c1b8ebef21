package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/herograph/backend/internal/domain"
)

func TestStore_AddNodeIsIdempotent(t *testing.T) {
	store := NewStore(1)

	assert.Equal(t, 1, store.AddNode("Natasha"))
	assert.Equal(t, 2, store.AddNode("Clint"))
	assert.Equal(t, 1, store.AddNode("Natasha"))
	assert.Equal(t, 2, store.NodeCount())

	name, ok := store.Name(2)
	require.True(t, ok)
	assert.Equal(t, "Clint", name)

	_, ok = store.Name(3)
	assert.False(t, ok)
}

func TestStore_AddEdgeAccumulatesWeightKeepsLabel(t *testing.T) {
	store := NewStore(0)

	assert.True(t, store.AddEdge("a", "b", 2, "first"))
	assert.False(t, store.AddEdge("b", "a", 3, "second"))
	assert.False(t, store.AddEdge("a", "a", 1, "loop"))

	weight, ok := store.Weight("a", "b")
	require.True(t, ok)
	assert.Equal(t, 5, weight)

	label, _ := store.Label("b", "a")
	assert.Equal(t, "first", label)

	assert.Equal(t, 1, store.EdgeCount())
	assert.Equal(t, 1, store.Degree("a"))
	assert.Equal(t, 0, store.Degree("missing"))
	assert.Equal(t, 5, store.Strength(0))
	assert.Equal(t, 5, store.TotalWeight())
}

func TestStore_NeighborsKeepInsertionOrder(t *testing.T) {
	store := NewStore(0)
	store.AddEdge("hub", "c", 1, "")
	store.AddEdge("a", "hub", 1, "")
	store.AddEdge("hub", "b", 1, "")

	assert.Equal(t, []string{"c", "a", "b"}, store.Neighbors("hub"))
	assert.Equal(t, []int{1, 2, 3}, store.NeighborIDs(0))
	assert.Nil(t, store.Neighbors("nobody"))
}

func TestStore_EdgesTraversalOrder(t *testing.T) {
	store := NewStore(1)
	store.AddEdge("B", "A", 1, "x")
	store.AddEdge("C", "B", 1, "y")
	store.AddEdge("A", "C", 1, "z")

	assert.Equal(t, []domain.LabeledEdge{
		{Source: 1, Target: 2, Type: "x"},
		{Source: 1, Target: 3, Type: "y"},
		{Source: 2, Target: 3, Type: "z"},
	}, store.Edges())
}

func TestStore_NamesSorted(t *testing.T) {
	store := NewStore(1)
	store.AddEdge("Wanda", "Vision", 1, "")
	store.AddEdge("Pietro", "Wanda", 1, "")

	assert.Equal(t, []string{"Pietro", "Vision", "Wanda"}, store.Names())
	assert.Equal(t, []domain.NodeRef{
		{ID: 1, Name: "Wanda"},
		{ID: 2, Name: "Vision"},
		{ID: 3, Name: "Pietro"},
	}, store.Nodes())
	assert.True(t, store.Contains("Vision"))
	assert.False(t, store.Contains("vision"))
}
