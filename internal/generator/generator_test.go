package generator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/herograph/backend/internal/dataset"
	"github.com/vanshika/herograph/backend/internal/domain"
)

func TestGenerator_Deterministic(t *testing.T) {
	cfg := Config{NumCharacters: 30, NumRelations: 90, Factions: 3, FactionAffinity: 0.8, Seed: 7}

	first, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.Characters, 30)
	assert.Len(t, first.Relations, 90)
}

func TestGenerator_RelationsReferenceKnownCharacters(t *testing.T) {
	ds, err := New(Config{NumCharacters: 20, NumRelations: 200, Seed: 3}).Generate(context.Background())
	require.NoError(t, err)

	ids := make(map[string]struct{}, len(ds.Characters))
	for _, c := range ds.Characters {
		_, dup := ids[c.ID]
		require.False(t, dup, "duplicate character id %q", c.ID)
		ids[c.ID] = struct{}{}
	}
	for _, rel := range ds.Relations {
		assert.Contains(t, ids, rel.Subject)
		assert.Contains(t, ids, rel.Object)
		assert.NotEqual(t, rel.Subject, rel.Object)
		assert.NotEmpty(t, rel.Relation)
	}
}

func TestGenerator_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(DefaultConfig()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteDataset_RoundTripsThroughCSVSource(t *testing.T) {
	ds, err := New(Config{NumCharacters: 10, NumRelations: 25, Seed: 11}).Generate(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteDataset(ds, dir))

	src := dataset.CSVSource{
		RelationsPath:  filepath.Join(dir, RelationsFile),
		CharactersPath: filepath.Join(dir, CharactersFile),
	}
	relations, err := src.LoadRelations(context.Background())
	require.NoError(t, err)
	characters, err := src.LoadCharacters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ds.Relations, relations)
	assert.Equal(t, ds.Characters, characters)
}

func TestDisplayDecorator(t *testing.T) {
	decorate := NewDisplayDecorator(99)
	again := NewDisplayDecorator(99)

	for degree := 0; degree < 20; degree++ {
		node := domain.OverlayNode{Degree: degree}
		decorate.Decorate(&node)

		assert.GreaterOrEqual(t, node.ScreenTime, degree*15+10)
		assert.LessOrEqual(t, node.ScreenTime, degree*15+50)
		assert.GreaterOrEqual(t, node.FirstAppearance, 2008)
		assert.LessOrEqual(t, node.FirstAppearance, 2023)
		assert.Equal(t, "hero", node.Alignment)

		twin := domain.OverlayNode{Degree: degree}
		again.Decorate(&twin)
		assert.Equal(t, node, twin)
	}
}
