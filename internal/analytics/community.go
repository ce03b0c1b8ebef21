package analytics

import (
	"sort"

	"github.com/vanshika/herograph/backend/internal/graph"
)

// DisplayBuckets is the number of community colours the front end renders.
// Community indices beyond it share buckets; this is a display collapse and
// says nothing about how many communities were found.
const DisplayBuckets = 10

// DisplayBucket maps a community index onto a display bucket.
func DisplayBucket(index int) int {
	return index % DisplayBuckets
}

// Partition is the result of community detection.
type Partition struct {
	// Communities holds member node ids, largest community first.
	Communities [][]int
	// Membership maps node index (id - FirstID) to community index.
	Membership []int
	// Modularity is Q of the final partition.
	Modularity float64
	// History records Q of the singleton partition followed by Q after each
	// merge. It never decreases.
	History []float64
}

// DetectCommunities partitions the graph by agglomerative greedy modularity
// maximization. Every node starts alone; at each step the connected pair of
// communities with the largest positive gain
//
//	ΔQ = w_ab/W - k_a*k_b/(2W²)
//
// is merged, until no merge improves Q. Ties go to the lowest index pair.
func DetectCommunities(store *graph.Store) Partition {
	n := store.NodeCount()
	first := store.FirstID()
	total := float64(store.TotalWeight())

	members := make([][]int, n)
	alive := make([]bool, n)
	strength := make([]float64, n)
	links := make([]map[int]float64, n)
	for i := 0; i < n; i++ {
		members[i] = []int{first + i}
		alive[i] = true
		links[i] = make(map[int]float64)
		for _, nid := range store.NeighborIDs(first + i) {
			w := float64(store.WeightBetween(first+i, nid))
			links[i][nid-first] += w
			strength[i] += w
		}
	}

	q := 0.0
	if total > 0 {
		for i := 0; i < n; i++ {
			share := strength[i] / (2 * total)
			q -= share * share
		}
	}
	history := []float64{q}

	for total > 0 {
		bestA, bestB := -1, -1
		best := 0.0
		for a := 0; a < n; a++ {
			if !alive[a] {
				continue
			}
			for b, w := range links[a] {
				if b <= a {
					continue
				}
				gain := w/total - strength[a]*strength[b]/(2*total*total)
				if gain > best || (gain == best && bestA >= 0 && a == bestA && b < bestB) {
					best, bestA, bestB = gain, a, b
				}
			}
		}
		if bestA < 0 {
			break
		}

		merge(bestA, bestB, members, alive, strength, links)
		q += best
		history = append(history, q)
	}

	return buildPartition(first, members, alive, history)
}

func merge(a, b int, members [][]int, alive []bool, strength []float64, links []map[int]float64) {
	for x, w := range links[b] {
		delete(links[x], b)
		if x == a {
			continue
		}
		links[a][x] += w
		links[x][a] += w
	}
	delete(links[a], b)
	links[b] = nil

	strength[a] += strength[b]
	members[a] = append(members[a], members[b]...)
	members[b] = nil
	alive[b] = false
}

func buildPartition(first int, members [][]int, alive []bool, history []float64) Partition {
	var communities [][]int
	for i := range members {
		if !alive[i] {
			continue
		}
		group := append([]int(nil), members[i]...)
		sort.Ints(group)
		communities = append(communities, group)
	}
	sort.SliceStable(communities, func(i, j int) bool {
		if len(communities[i]) != len(communities[j]) {
			return len(communities[i]) > len(communities[j])
		}
		return communities[i][0] < communities[j][0]
	})

	membership := make([]int, len(members))
	for idx, group := range communities {
		for _, id := range group {
			membership[id-first] = idx
		}
	}

	return Partition{
		Communities: communities,
		Membership:  membership,
		Modularity:  history[len(history)-1],
		History:     history,
	}
}

// Modularity computes Q = Σ_c [ e_c/W - (k_c/(2W))² ] for an arbitrary
// membership slice indexed by node index.
func Modularity(store *graph.Store, membership []int) float64 {
	total := float64(store.TotalWeight())
	if total == 0 {
		return 0
	}
	first := store.FirstID()
	internal := make(map[int]float64)
	degree := make(map[int]float64)
	for _, e := range store.WeightedEdges() {
		ca := membership[e.Source-first]
		cb := membership[e.Target-first]
		w := float64(e.Weight)
		degree[ca] += w
		degree[cb] += w
		if ca == cb {
			internal[ca] += w
		}
	}

	q := 0.0
	for c, k := range degree {
		share := k / (2 * total)
		q += internal[c]/total - share*share
	}
	return q
}
