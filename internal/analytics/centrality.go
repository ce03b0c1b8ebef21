package analytics

import (
	"math"

	"github.com/vanshika/herograph/backend/internal/graph"
)

const (
	DefaultDamping       = 0.85
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

// PageRankOptions tunes the power iteration.
type PageRankOptions struct {
	Damping       float64
	Tolerance     float64
	MaxIterations int
}

// DefaultPageRankOptions returns d=0.85, tol=1e-6, 100 iterations.
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		Damping:       DefaultDamping,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// PageRankResult holds the raw converged distribution.
type PageRankResult struct {
	Scores     []float64
	Iterations int
	Converged  bool
}

// Degree returns the neighbour count of every node.
func Degree(store *graph.Store) []int {
	n := store.NodeCount()
	first := store.FirstID()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = len(store.NeighborIDs(first + i))
	}
	return out
}

// PageRank runs the weighted power method
//
//	s_i' = (1-d)/n + d * Σ_j (w_ij / W_j) * s_j
//
// until the L1 change drops below the tolerance or the iteration cap is hit.
// Nodes with no incident weight pass on nothing.
func PageRank(store *graph.Store, opts PageRankOptions) PageRankResult {
	n := store.NodeCount()
	if n == 0 {
		return PageRankResult{Scores: []float64{}, Converged: true}
	}
	if opts.Damping <= 0 || opts.Damping >= 1 {
		opts.Damping = DefaultDamping
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	first := store.FirstID()
	neighbors := make([][]int, n)
	weights := make([][]float64, n)
	strength := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, nid := range store.NeighborIDs(first + i) {
			w := float64(store.WeightBetween(first+i, nid))
			neighbors[i] = append(neighbors[i], nid-first)
			weights[i] = append(weights[i], w)
			strength[i] += w
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	base := (1 - opts.Damping) / float64(n)

	result := PageRankResult{}
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		delta := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for k, j := range neighbors[i] {
				if strength[j] == 0 {
					continue
				}
				sum += weights[i][k] / strength[j] * scores[j]
			}
			next[i] = base + opts.Damping*sum
			delta += math.Abs(next[i] - scores[i])
		}
		scores, next = next, scores
		result.Iterations = iter
		if delta < opts.Tolerance {
			result.Converged = true
			break
		}
	}

	result.Scores = scores
	return result
}
