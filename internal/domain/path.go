package domain

// NodeRef identifies a node of the labeled graph.
type NodeRef struct {
	ID   int
	Name string
}

// LabeledEdge connects two labeled node ids and carries the relation label of
// the first raw record observed for the pair.
type LabeledEdge struct {
	Source int
	Target int
	Type   string
}

// PathResult is a shortest path between two characters. Edges[i] joins
// Nodes[i] and Nodes[i+1].
type PathResult struct {
	Nodes []NodeRef
	Edges []LabeledEdge
}

// Hops returns the number of edges on the path.
func (p PathResult) Hops() int {
	return len(p.Edges)
}
