package domain

// OverlayNode is a character enriched with centrality and community scores.
// ScreenTime, FirstAppearance and Alignment are display decoration only.
type OverlayNode struct {
	ID              int
	Name            string
	Community       int
	PageRank        float64
	Degree          int
	ScreenTime      int
	FirstAppearance int
	Alignment       string
}

// WeightedEdge connects two analytics node ids. Weight counts the raw records
// that collapsed onto the pair.
type WeightedEdge struct {
	Source int
	Target int
	Weight int
}

// Movie is an entry of the static film catalog shipped with the overlay.
type Movie struct {
	ID   int
	Name string
	Year int
}

// Overlay is the full analytics view served to visualization clients.
type Overlay struct {
	Nodes  []OverlayNode
	Links  []WeightedEdge
	Movies []Movie
}

// Empty reports whether the overlay holds no nodes.
func (o Overlay) Empty() bool {
	return len(o.Nodes) == 0
}
