package dataset

import (
	"sort"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// Index answers attribute lookups over raw records. It performs no graph
// computation and is read-only once built.
type Index struct {
	characters []domain.CharacterRecord
	// byID and byName map to the first record carrying that id or name.
	byID      map[string]int
	byName    map[string]int
	relations []domain.RelationRecord
}

// NewIndex captures the supplied records.
func NewIndex(characters []domain.CharacterRecord, relations []domain.RelationRecord) *Index {
	idx := &Index{
		characters: characters,
		byID:       make(map[string]int, len(characters)),
		byName:     make(map[string]int, len(characters)),
		relations:  relations,
	}
	for i, c := range characters {
		if _, ok := idx.byID[c.ID]; !ok {
			idx.byID[c.ID] = i
		}
		if _, ok := idx.byName[c.Name]; !ok {
			idx.byName[c.Name] = i
		}
	}
	return idx
}

// CharacterCount returns the number of character records.
func (i *Index) CharacterCount() int { return len(i.characters) }

// Find returns the first character whose id or name equals key.
func (i *Index) Find(key string) (domain.CharacterRecord, bool) {
	pos, ok := i.byID[key]
	if byName, named := i.byName[key]; named && (!ok || byName < pos) {
		pos, ok = byName, true
	}
	if !ok {
		return domain.CharacterRecord{}, false
	}
	return i.characters[pos], true
}

// Expand collects every raw relation touching key together with the records
// of the characters on the other side. Neighbours without a character record
// are returned as id/name stubs.
func (i *Index) Expand(key string) domain.Neighborhood {
	hood := domain.Neighborhood{
		Nodes: []domain.CharacterRecord{},
		Links: []domain.RawLink{},
	}

	var neighbors []string
	seen := make(map[string]struct{})
	for _, rel := range i.relations {
		if rel.Subject != key && rel.Object != key {
			continue
		}
		hood.Links = append(hood.Links, domain.RawLink{Source: rel.Subject, Target: rel.Object, Type: rel.Relation})

		other := rel.Object
		if rel.Subject != key {
			other = rel.Subject
		}
		if _, ok := seen[other]; !ok {
			seen[other] = struct{}{}
			neighbors = append(neighbors, other)
		}
	}

	// Known neighbours come first in record order, then stubs in link order.
	var (
		known   []int
		unknown []string
	)
	for _, id := range neighbors {
		if pos, ok := i.byID[id]; ok {
			known = append(known, pos)
			continue
		}
		unknown = append(unknown, id)
	}
	sort.Ints(known)
	for _, pos := range known {
		hood.Nodes = append(hood.Nodes, i.characters[pos])
	}
	for _, id := range unknown {
		hood.Nodes = append(hood.Nodes, domain.CharacterRecord{ID: id, Name: id})
	}
	return hood
}
