package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/herograph/backend/internal/domain"
)

func TestReadRelations(t *testing.T) {
	input := "relation,subject,object\n" +
		"ally, Tony , Steve\n" +
		"rival,Thor,\n" +
		"short\n" +
		"\"brother\",Loki,Thor\n"

	records, stats, err := ReadRelations(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []domain.RelationRecord{
		{Subject: "Tony", Object: "Steve", Relation: "ally"},
		{Subject: "Loki", Object: "Thor", Relation: "brother"},
	}, records)
	assert.Equal(t, Stats{Rows: 4, Loaded: 2, Skipped: 2}, stats)
}

func TestReadRelations_HeaderWithBOM(t *testing.T) {
	records, _, err := ReadRelations(strings.NewReader("\ufeffsubject,object,relation\nA,B,r\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].Subject)
}

func TestReadRelations_MissingColumns(t *testing.T) {
	_, _, err := ReadRelations(strings.NewReader("source,target\nA,B\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestReadRelations_Empty(t *testing.T) {
	records, stats, err := ReadRelations(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, stats.Rows)
}

func TestReadCharacters(t *testing.T) {
	input := "1,Tony Stark,alive,human\n2,Groot\n,Nameless,x,y\n3\n"

	records, stats, err := ReadCharacters(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []domain.CharacterRecord{
		{ID: "1", Name: "Tony Stark", Status: "alive", Species: "human"},
		{ID: "2", Name: "Groot"},
	}, records)
	assert.Equal(t, 2, stats.Skipped)
}

func TestWriteThenReadRelations(t *testing.T) {
	want := []domain.RelationRecord{{Subject: "A, Jr.", Object: "B", Relation: "says \"hi\""}}

	var buf bytes.Buffer
	require.NoError(t, WriteRelations(&buf, want))

	got, _, err := ReadRelations(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()
	relPath := filepath.Join(dir, "relations.csv")
	charPath := filepath.Join(dir, "characters.csv")
	require.NoError(t, os.WriteFile(relPath, []byte("subject,object,relation\nA,B,ally\n"), 0o644))
	require.NoError(t, os.WriteFile(charPath, []byte("a1,A,alive,human\n"), 0o644))

	src := CSVSource{RelationsPath: relPath, CharactersPath: charPath}
	rels, err := src.LoadRelations(context.Background())
	require.NoError(t, err)
	assert.Len(t, rels, 1)

	chars, err := src.LoadCharacters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", chars[0].Name)

	_, err = CSVSource{RelationsPath: filepath.Join(dir, "missing.csv")}.LoadRelations(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
