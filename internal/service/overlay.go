package service

import (
	"github.com/vanshika/herograph/backend/internal/analytics"
	"github.com/vanshika/herograph/backend/internal/domain"
	"github.com/vanshika/herograph/backend/internal/graph"
)

// PageRankDisplayScale multiplies raw PageRank scores before they are served,
// which is the scale visualization clients size nodes by.
const PageRankDisplayScale = 1000

// Decorator fills the display-only fields of an overlay node.
type Decorator interface {
	Decorate(node *domain.OverlayNode)
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc func(node *domain.OverlayNode)

// Decorate implements Decorator.
func (f DecoratorFunc) Decorate(node *domain.OverlayNode) { f(node) }

// BuildOverlay runs centrality and community detection over the weighted
// store and assembles the response payload. Nodes appear in id order and
// links in the order their pairs were first seen.
func BuildOverlay(store *graph.Store, decorate Decorator, opts analytics.PageRankOptions) domain.Overlay {
	n := store.NodeCount()
	overlay := domain.Overlay{
		Nodes:  make([]domain.OverlayNode, 0, n),
		Links:  store.WeightedEdges(),
		Movies: Movies(),
	}
	if n == 0 {
		return overlay
	}

	degree := analytics.Degree(store)
	rank := analytics.PageRank(store, opts)
	partition := analytics.DetectCommunities(store)

	first := store.FirstID()
	for i := 0; i < n; i++ {
		name, _ := store.Name(first + i)
		node := domain.OverlayNode{
			ID:        first + i,
			Name:      name,
			Community: analytics.DisplayBucket(partition.Membership[i]),
			PageRank:  rank.Scores[i] * PageRankDisplayScale,
			Degree:    degree[i],
		}
		if decorate != nil {
			decorate.Decorate(&node)
		}
		overlay.Nodes = append(overlay.Nodes, node)
	}
	return overlay
}

// Movies returns the static film catalog shipped with every overlay.
func Movies() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Name: "钢铁侠1", Year: 2008},
		{ID: 2, Name: "雷神", Year: 2011},
		{ID: 3, Name: "复仇者联盟", Year: 2012},
		{ID: 4, Name: "银河护卫队", Year: 2014},
		{ID: 5, Name: "复仇者联盟2", Year: 2015},
		{ID: 6, Name: "美国队长3", Year: 2016},
		{ID: 7, Name: "复仇者联盟3", Year: 2018},
		{ID: 8, Name: "复仇者联盟4", Year: 2019},
	}
}
