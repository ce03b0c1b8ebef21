package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/herograph/backend/internal/domain"
)

func testIndex() *Index {
	return NewIndex(
		[]domain.CharacterRecord{
			{ID: "tonys", Name: "Tony Stark", Status: "alive", Species: "human"},
			{ID: "pepper", Name: "Pepper Potts"},
		},
		[]domain.RelationRecord{
			{Subject: "tonys", Object: "pepper", Relation: "spouse"},
			{Subject: "rhodey", Object: "tonys", Relation: "friend"},
			{Subject: "pepper", Object: "happy", Relation: "boss"},
		},
	)
}

func TestIndex_Find(t *testing.T) {
	idx := testIndex()

	byID, ok := idx.Find("tonys")
	require.True(t, ok)
	assert.Equal(t, "Tony Stark", byID.Name)

	byName, ok := idx.Find("Pepper Potts")
	require.True(t, ok)
	assert.Equal(t, "pepper", byName.ID)

	_, ok = idx.Find("thanos")
	assert.False(t, ok)
}

func TestIndex_Expand(t *testing.T) {
	hood := testIndex().Expand("tonys")

	assert.Equal(t, []domain.RawLink{
		{Source: "tonys", Target: "pepper", Type: "spouse"},
		{Source: "rhodey", Target: "tonys", Type: "friend"},
	}, hood.Links)
	assert.Equal(t, []domain.CharacterRecord{
		{ID: "pepper", Name: "Pepper Potts"},
		{ID: "rhodey", Name: "rhodey"},
	}, hood.Nodes)
}

func TestIndex_ExpandUnknown(t *testing.T) {
	hood := testIndex().Expand("nobody")
	assert.Empty(t, hood.Links)
	assert.Empty(t, hood.Nodes)
	assert.NotNil(t, hood.Nodes)
}

func TestIndex_FindPrefersEarliestRecord(t *testing.T) {
	idx := NewIndex(
		[]domain.CharacterRecord{
			{ID: "vision", Name: "Vision"},
			{ID: "wanda", Name: "vision"},
			{ID: "vision", Name: "Vision (duplicate)"},
		},
		nil,
	)

	rec, ok := idx.Find("vision")
	require.True(t, ok)
	assert.Equal(t, "Vision", rec.Name)

	rec, ok = idx.Find("Vision (duplicate)")
	require.True(t, ok)
	assert.Equal(t, "vision", rec.ID)
}

func TestIndex_ExpandOrdersKnownNeighboursByRecord(t *testing.T) {
	idx := NewIndex(
		[]domain.CharacterRecord{
			{ID: "sam", Name: "Sam Wilson"},
			{ID: "bucky", Name: "Bucky Barnes"},
			{ID: "sam", Name: "Sam (duplicate)"},
		},
		[]domain.RelationRecord{
			{Subject: "steve", Object: "bucky", Relation: "friend"},
			{Subject: "steve", Object: "peggy", Relation: "partner"},
			{Subject: "sam", Object: "steve", Relation: "ally"},
		},
	)

	hood := idx.Expand("steve")
	require.Len(t, hood.Links, 3)
	assert.Equal(t, []domain.CharacterRecord{
		{ID: "sam", Name: "Sam Wilson"},
		{ID: "bucky", Name: "Bucky Barnes"},
		{ID: "peggy", Name: "peggy"},
	}, hood.Nodes)
}
