package graph

import (
	"strings"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// Pair is an unordered pair of character names in canonical order (A <= B).
type Pair struct {
	A string
	B string
}

// Canonical orders two names lexicographically so that (a, b) and (b, a)
// collapse onto the same Pair.
func Canonical(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Aggregation is the deduplicated view of a raw record stream.
type Aggregation struct {
	// Pairs lists every canonical pair once, in order of first appearance.
	Pairs []Pair
	// Weights counts the records that collapsed onto each pair.
	Weights map[Pair]int
	// Labels holds the relation of the first record seen for each pair.
	Labels map[Pair]string
	// Records is the trimmed, valid input in its original order. The labeled
	// graph is built from it so node ids and adjacency follow raw row order.
	Records []domain.RelationRecord
	// Skipped counts records dropped for empty endpoints or self-loops.
	Skipped int
}

// Aggregate trims and canonicalizes raw records into weighted and labeled
// edge sets. It is deterministic for a given input order.
func Aggregate(records []domain.RelationRecord) Aggregation {
	agg := Aggregation{
		Weights: make(map[Pair]int),
		Labels:  make(map[Pair]string),
		Records: make([]domain.RelationRecord, 0, len(records)),
	}

	for _, rec := range records {
		subject := strings.TrimSpace(rec.Subject)
		object := strings.TrimSpace(rec.Object)
		if subject == "" || object == "" || subject == object {
			agg.Skipped++
			continue
		}
		relation := strings.TrimSpace(rec.Relation)

		pair := Canonical(subject, object)
		if _, seen := agg.Weights[pair]; !seen {
			agg.Pairs = append(agg.Pairs, pair)
			agg.Labels[pair] = relation
		}
		agg.Weights[pair]++

		agg.Records = append(agg.Records, domain.RelationRecord{
			Subject:  subject,
			Object:   object,
			Relation: relation,
		})
	}

	return agg
}

// BuildWeighted constructs the analytics graph. Ids start at 0 and follow the
// first appearance of each canonical pair, smaller name first.
func BuildWeighted(agg Aggregation) *Store {
	store := NewStore(0)
	for _, pair := range agg.Pairs {
		store.AddEdge(pair.A, pair.B, agg.Weights[pair], "")
	}
	return store
}

// BuildLabeled constructs the path-query graph. Ids start at 1 and follow raw
// subject/object order; the first relation seen for a pair is kept.
func BuildLabeled(agg Aggregation) *Store {
	store := NewStore(1)
	for _, rec := range agg.Records {
		store.AddEdge(rec.Subject, rec.Object, 1, rec.Relation)
	}
	return store
}
