package graph

import (
	"fmt"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// ShortestPath runs a breadth-first search from start and returns the first
// path found to end. Neighbours are explored in insertion order, so among
// several shortest paths the result is fixed for a given input.
func (s *Store) ShortestPath(start, end string) (domain.PathResult, error) {
	from, ok := s.index[start]
	if !ok {
		return domain.PathResult{}, fmt.Errorf("%w: %q", domain.ErrNotFound, start)
	}
	to, ok := s.index[end]
	if !ok {
		return domain.PathResult{}, fmt.Errorf("%w: %q", domain.ErrNotFound, end)
	}

	if from == to {
		return domain.PathResult{
			Nodes: []domain.NodeRef{{ID: s.firstID + from, Name: start}},
			Edges: []domain.LabeledEdge{},
		}, nil
	}

	prev := make([]int, len(s.names))
	for i := range prev {
		prev[i] = -1
	}
	prev[from] = from

	queue := []int{from}
	for len(queue) > 0 && prev[to] < 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range s.adj[current] {
			if prev[next] >= 0 {
				continue
			}
			prev[next] = current
			if next == to {
				break
			}
			queue = append(queue, next)
		}
	}

	if prev[to] < 0 {
		return domain.PathResult{}, fmt.Errorf("%w: %q -> %q", domain.ErrNoPath, start, end)
	}

	var hops []int
	for at := to; at != from; at = prev[at] {
		hops = append(hops, at)
	}
	hops = append(hops, from)

	result := domain.PathResult{
		Nodes: make([]domain.NodeRef, 0, len(hops)),
		Edges: make([]domain.LabeledEdge, 0, len(hops)-1),
	}
	for i := len(hops) - 1; i >= 0; i-- {
		idx := hops[i]
		result.Nodes = append(result.Nodes, domain.NodeRef{ID: s.firstID + idx, Name: s.names[idx]})
		if i > 0 {
			nextIdx := hops[i-1]
			result.Edges = append(result.Edges, domain.LabeledEdge{
				Source: s.firstID + idx,
				Target: s.firstID + nextIdx,
				Type:   s.edges[keyOf(idx, nextIdx)].label,
			})
		}
	}
	return result, nil
}
