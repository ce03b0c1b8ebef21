package dataset

import (
	"context"
	"fmt"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// RelationSource yields raw relation records in a stable order.
type RelationSource interface {
	LoadRelations(ctx context.Context) ([]domain.RelationRecord, error)
}

// CharacterSource yields raw character attribute records.
type CharacterSource interface {
	LoadCharacters(ctx context.Context) ([]domain.CharacterRecord, error)
}

// CSVSource reads both record kinds from local CSV files.
type CSVSource struct {
	RelationsPath  string
	CharactersPath string
}

// LoadRelations implements RelationSource.
func (s CSVSource) LoadRelations(ctx context.Context) ([]domain.RelationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := openFile(s.RelationsPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, _, err := ReadRelations(file)
	if err != nil {
		return nil, fmt.Errorf("load relations from %s: %w", s.RelationsPath, err)
	}
	return records, nil
}

// LoadCharacters implements CharacterSource.
func (s CSVSource) LoadCharacters(ctx context.Context) ([]domain.CharacterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := openFile(s.CharactersPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, _, err := ReadCharacters(file)
	if err != nil {
		return nil, fmt.Errorf("load characters from %s: %w", s.CharactersPath, err)
	}
	return records, nil
}

// StaticSource serves fixed records, mainly for tests and tooling.
type StaticSource struct {
	Relations  []domain.RelationRecord
	Characters []domain.CharacterRecord
	Err        error
}

// LoadRelations implements RelationSource.
func (s StaticSource) LoadRelations(context.Context) ([]domain.RelationRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.RelationRecord(nil), s.Relations...), nil
}

// LoadCharacters implements CharacterSource.
func (s StaticSource) LoadCharacters(context.Context) ([]domain.CharacterRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.CharacterRecord(nil), s.Characters...), nil
}
