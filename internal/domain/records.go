package domain

// RelationRecord is a single raw subject–relation–object row.
type RelationRecord struct {
	Subject  string
	Object   string
	Relation string
}

// CharacterRecord is a raw character attribute row. It is only consumed by the
// lookup endpoints and never participates in graph computation.
type CharacterRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status,omitempty"`
	Species string `json:"species,omitempty"`
}

// RawLink is a relation row exposed verbatim by the lookup endpoints.
type RawLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Neighborhood is the raw one-hop surrounding of a character.
type Neighborhood struct {
	Nodes []CharacterRecord
	Links []RawLink
}
