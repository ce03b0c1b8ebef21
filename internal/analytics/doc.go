// Package analytics computes node importance and community structure over the
// weighted character graph: degree centrality, weighted PageRank and greedy
// modularity communities. All functions are pure and operate on a populated
// graph.Store; results are indexed by node id minus Store.FirstID().
package analytics
