package graph

import (
	"sort"

	"github.com/vanshika/herograph/backend/internal/domain"
)

type edgeKey struct {
	lo int
	hi int
}

func keyOf(a, b int) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

type edgeData struct {
	// source/target keep the orientation of the first insertion.
	source int
	target int
	weight int
	label  string
}

// Store is an undirected graph keyed by character name. Node ids are assigned
// sequentially from the configured first id and never change. Neighbour lists
// preserve insertion order, which path queries rely on for tie-breaking.
//
// A Store is not safe for concurrent mutation. Once populated it is read-only
// and may be shared freely.
type Store struct {
	firstID int
	index   map[string]int
	names   []string
	adj     [][]int
	edges   map[edgeKey]*edgeData
	order   []edgeKey
}

// NewStore returns an empty Store whose first node receives firstID.
func NewStore(firstID int) *Store {
	return &Store{
		firstID: firstID,
		index:   make(map[string]int),
		edges:   make(map[edgeKey]*edgeData),
	}
}

// AddNode registers name and returns its id. Repeated calls return the id
// assigned on first sight.
func (s *Store) AddNode(name string) int {
	if idx, ok := s.index[name]; ok {
		return s.firstID + idx
	}
	idx := len(s.names)
	s.index[name] = idx
	s.names = append(s.names, name)
	s.adj = append(s.adj, nil)
	return s.firstID + idx
}

// AddEdge connects a and b, creating either node if needed. Weight accumulates
// across calls for the same pair while the label keeps its first value.
// Self-loops are ignored. It reports whether a new edge was created.
func (s *Store) AddEdge(a, b string, weight int, label string) bool {
	if a == b {
		return false
	}
	ia := s.AddNode(a) - s.firstID
	ib := s.AddNode(b) - s.firstID

	key := keyOf(ia, ib)
	if existing, ok := s.edges[key]; ok {
		existing.weight += weight
		return false
	}

	s.edges[key] = &edgeData{source: ia, target: ib, weight: weight, label: label}
	s.order = append(s.order, key)
	s.adj[ia] = append(s.adj[ia], ib)
	s.adj[ib] = append(s.adj[ib], ia)
	return true
}

// FirstID returns the id assigned to the first node.
func (s *Store) FirstID() int { return s.firstID }

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.names) }

// EdgeCount returns the number of distinct undirected edges.
func (s *Store) EdgeCount() int { return len(s.order) }

// Contains reports whether name is a node of the graph.
func (s *Store) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// ID returns the id of name.
func (s *Store) ID(name string) (int, bool) {
	idx, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.firstID + idx, true
}

// Name returns the name registered under id.
func (s *Store) Name(id int) (string, bool) {
	idx := id - s.firstID
	if idx < 0 || idx >= len(s.names) {
		return "", false
	}
	return s.names[idx], true
}

// Degree returns the number of neighbours of name, or 0 if absent.
func (s *Store) Degree(name string) int {
	idx, ok := s.index[name]
	if !ok {
		return 0
	}
	return len(s.adj[idx])
}

// Neighbors returns the neighbours of name in insertion order.
func (s *Store) Neighbors(name string) []string {
	idx, ok := s.index[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(s.adj[idx]))
	for _, n := range s.adj[idx] {
		out = append(out, s.names[n])
	}
	return out
}

// NeighborIDs returns the neighbour ids of id in insertion order.
func (s *Store) NeighborIDs(id int) []int {
	idx := id - s.firstID
	if idx < 0 || idx >= len(s.adj) {
		return nil
	}
	out := make([]int, len(s.adj[idx]))
	for i, n := range s.adj[idx] {
		out[i] = s.firstID + n
	}
	return out
}

// WeightBetween returns the accumulated weight of the edge joining two ids, or 0.
func (s *Store) WeightBetween(a, b int) int {
	if e, ok := s.edges[keyOf(a-s.firstID, b-s.firstID)]; ok {
		return e.weight
	}
	return 0
}

// Strength returns the total weight incident to id.
func (s *Store) Strength(id int) int {
	total := 0
	for _, n := range s.NeighborIDs(id) {
		total += s.WeightBetween(id, n)
	}
	return total
}

// TotalWeight returns the sum of all edge weights.
func (s *Store) TotalWeight() int {
	total := 0
	for _, key := range s.order {
		total += s.edges[key].weight
	}
	return total
}

// Weight returns the weight of the edge between two names.
func (s *Store) Weight(a, b string) (int, bool) {
	e, ok := s.lookup(a, b)
	if !ok {
		return 0, false
	}
	return e.weight, true
}

// Label returns the relation label of the edge between two names.
func (s *Store) Label(a, b string) (string, bool) {
	e, ok := s.lookup(a, b)
	if !ok {
		return "", false
	}
	return e.label, true
}

func (s *Store) lookup(a, b string) (*edgeData, bool) {
	ia, ok := s.index[a]
	if !ok {
		return nil, false
	}
	ib, ok := s.index[b]
	if !ok {
		return nil, false
	}
	e, ok := s.edges[keyOf(ia, ib)]
	return e, ok
}

// Nodes returns every node in id order.
func (s *Store) Nodes() []domain.NodeRef {
	out := make([]domain.NodeRef, len(s.names))
	for i, name := range s.names {
		out[i] = domain.NodeRef{ID: s.firstID + i, Name: name}
	}
	return out
}

// Names returns all node names sorted lexicographically.
func (s *Store) Names() []string {
	out := append([]string(nil), s.names...)
	sort.Strings(out)
	return out
}

// Edges lists labeled edges by walking nodes in id order and emitting each
// neighbour not yet visited as a source.
func (s *Store) Edges() []domain.LabeledEdge {
	out := make([]domain.LabeledEdge, 0, len(s.order))
	visited := make([]bool, len(s.names))
	for u := range s.names {
		for _, v := range s.adj[u] {
			if visited[v] {
				continue
			}
			out = append(out, domain.LabeledEdge{
				Source: s.firstID + u,
				Target: s.firstID + v,
				Type:   s.edges[keyOf(u, v)].label,
			})
		}
		visited[u] = true
	}
	return out
}

// WeightedEdges lists edges in insertion order, oriented as first inserted.
func (s *Store) WeightedEdges() []domain.WeightedEdge {
	out := make([]domain.WeightedEdge, 0, len(s.order))
	for _, key := range s.order {
		e := s.edges[key]
		out = append(out, domain.WeightedEdge{
			Source: s.firstID + e.source,
			Target: s.firstID + e.target,
			Weight: e.weight,
		})
	}
	return out
}
