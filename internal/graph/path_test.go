package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/herograph/backend/internal/domain"
)

func TestShortestPath_EndToEndExample(t *testing.T) {
	store := BuildLabeled(Aggregate(sampleRecords()))

	path, err := store.ShortestPath("A", "C")
	require.NoError(t, err)

	assert.Equal(t, []domain.NodeRef{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}, path.Nodes)
	assert.Equal(t, []domain.LabeledEdge{
		{Source: 1, Target: 2, Type: "ally"},
		{Source: 2, Target: 3, Type: "rival"},
	}, path.Edges)
	assert.Equal(t, 2, path.Hops())
}

func TestShortestPath_SameNode(t *testing.T) {
	store := BuildLabeled(Aggregate(sampleRecords()))

	path, err := store.ShortestPath("B", "B")
	require.NoError(t, err)
	assert.Equal(t, []domain.NodeRef{{ID: 2, Name: "B"}}, path.Nodes)
	assert.Empty(t, path.Edges)
}

func TestShortestPath_Errors(t *testing.T) {
	store := BuildLabeled(Aggregate([]domain.RelationRecord{
		{Subject: "A", Object: "B", Relation: "r"},
		{Subject: "C", Object: "D", Relation: "r"},
	}))

	_, err := store.ShortestPath("A", "D")
	assert.ErrorIs(t, err, domain.ErrNoPath)

	_, err = store.ShortestPath("Nobody", "A")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.ShortestPath("A", "Nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShortestPath_TieBrokenByInsertionOrder(t *testing.T) {
	// Two routes of length two from S to T; the one through the neighbour
	// inserted first must win.
	store := BuildLabeled(Aggregate([]domain.RelationRecord{
		{Subject: "S", Object: "Right", Relation: "r1"},
		{Subject: "S", Object: "Left", Relation: "l1"},
		{Subject: "Left", Object: "T", Relation: "l2"},
		{Subject: "Right", Object: "T", Relation: "r2"},
	}))

	path, err := store.ShortestPath("S", "T")
	require.NoError(t, err)
	require.Len(t, path.Nodes, 3)
	assert.Equal(t, "Right", path.Nodes[1].Name)
	assert.Equal(t, "r1", path.Edges[0].Type)
	assert.Equal(t, "r2", path.Edges[1].Type)
}

func TestShortestPath_PrefersFewerHops(t *testing.T) {
	store := BuildLabeled(Aggregate([]domain.RelationRecord{
		{Subject: "S", Object: "M1", Relation: "a"},
		{Subject: "M1", Object: "M2", Relation: "b"},
		{Subject: "M2", Object: "T", Relation: "c"},
		{Subject: "S", Object: "T", Relation: "direct"},
	}))

	path, err := store.ShortestPath("S", "T")
	require.NoError(t, err)
	assert.Equal(t, 1, path.Hops())
	assert.Equal(t, "direct", path.Edges[0].Type)
}
