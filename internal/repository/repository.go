package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/herograph/backend/internal/domain"
	"github.com/vanshika/herograph/backend/internal/graphdb"
)

// Repository stores raw relation and character records in the graph database.
// Computed analytics are never written back.
type Repository struct {
	client graphdb.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graphdb.Client) *Repository {
	return &Repository{client: client}
}

// EnsureSchema creates the uniqueness constraint character upserts rely on.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.ExecuteWrite(ctx, ensureCharacterConstraintCypher, nil); err != nil {
		return fmt.Errorf("ensure character constraint: %w", err)
	}
	return nil
}

// UpsertRelations writes a batch of relation records. offset is the position of
// the first record in the source stream and is stored on every relationship so
// LoadRelations can return rows in their original order.
func (r *Repository) UpsertRelations(ctx context.Context, offset int, records []domain.RelationRecord) (int, error) {
	rows := make([]map[string]any, 0, len(records))
	for i, rec := range records {
		subject := strings.TrimSpace(rec.Subject)
		object := strings.TrimSpace(rec.Object)
		if subject == "" || object == "" {
			continue
		}
		rows = append(rows, map[string]any{
			"seq":      int64(offset + i),
			"subject":  subject,
			"object":   object,
			"relation": strings.TrimSpace(rec.Relation),
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res, err := r.client.ExecuteWrite(ctx, upsertRelationsCypher, map[string]any{"rows": rows})
	if err != nil {
		return 0, fmt.Errorf("upsert %d relations at offset %d: %w", len(rows), offset, err)
	}
	if res.Counters.RelationshipsCreated > 0 {
		return res.Counters.RelationshipsCreated, nil
	}
	return len(rows), nil
}

// UpsertCharacters writes character attribute records keyed by name.
func (r *Repository) UpsertCharacters(ctx context.Context, records []domain.CharacterRecord) error {
	rows := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			continue
		}
		rows = append(rows, map[string]any{
			"id":      strings.TrimSpace(rec.ID),
			"name":    strings.TrimSpace(rec.Name),
			"status":  rec.Status,
			"species": rec.Species,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	if _, err := r.client.ExecuteWrite(ctx, upsertCharactersCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d characters: %w", len(rows), err)
	}
	return nil
}

// LoadRelations returns every stored relation in source order.
func (r *Repository) LoadRelations(ctx context.Context) ([]domain.RelationRecord, error) {
	res, err := r.client.ExecuteRead(ctx, loadRelationsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("load relations query: %w", err)
	}

	records := make([]domain.RelationRecord, 0, len(res.Records))
	for _, row := range res.Records {
		records = append(records, domain.RelationRecord{
			Subject:  toString(row["subject"]),
			Object:   toString(row["object"]),
			Relation: toString(row["relation"]),
		})
	}
	return records, nil
}

// LoadCharacters returns stored character records that carry an id.
func (r *Repository) LoadCharacters(ctx context.Context) ([]domain.CharacterRecord, error) {
	res, err := r.client.ExecuteRead(ctx, loadCharactersCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("load characters query: %w", err)
	}

	records := make([]domain.CharacterRecord, 0, len(res.Records))
	for _, row := range res.Records {
		records = append(records, domain.CharacterRecord{
			ID:      toString(row["id"]),
			Name:    toString(row["name"]),
			Status:  toString(row["status"]),
			Species: toString(row["species"]),
		})
	}
	return records, nil
}

// CountRelations returns the number of stored relation rows.
func (r *Repository) CountRelations(ctx context.Context) (int64, error) {
	res, err := r.client.ExecuteRead(ctx, countRelationsCypher, nil)
	if err != nil {
		return 0, fmt.Errorf("count relations query: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, errors.New("count relations query returned no rows")
	}
	return toInt64(res.Records[0]["total"]), nil
}

// Reset removes all stored relations. Character nodes are kept.
func (r *Repository) Reset(ctx context.Context) (int, error) {
	res, err := r.client.ExecuteWrite(ctx, deleteRelationsCypher, nil)
	if err != nil {
		return 0, fmt.Errorf("delete relations: %w", err)
	}
	return res.Counters.RelationshipsDeleted, nil
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

const ensureCharacterConstraintCypher = `
CREATE CONSTRAINT character_name IF NOT EXISTS
FOR (c:Character) REQUIRE c.name IS UNIQUE
`

const upsertRelationsCypher = `
UNWIND $rows AS row
MERGE (s:Character {name: row.subject})
MERGE (o:Character {name: row.object})
MERGE (s)-[r:RELATES {seq: row.seq}]->(o)
SET r.relation = row.relation
`

const upsertCharactersCypher = `
UNWIND $rows AS row
MERGE (c:Character {name: row.name})
SET c.characterId = row.id,
    c.status = row.status,
    c.species = row.species
`

const loadRelationsCypher = `
MATCH (s:Character)-[r:RELATES]->(o:Character)
RETURN s.name AS subject, o.name AS object, r.relation AS relation
ORDER BY r.seq ASC
`

const loadCharactersCypher = `
MATCH (c:Character)
WHERE c.characterId IS NOT NULL AND c.characterId <> ''
RETURN c.characterId AS id, c.name AS name, c.status AS status, c.species AS species
ORDER BY c.characterId ASC
`

const countRelationsCypher = `
MATCH ()-[r:RELATES]->()
RETURN count(r) AS total
`

const deleteRelationsCypher = `
MATCH ()-[r:RELATES]->()
DELETE r
`
