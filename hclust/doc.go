// Package hclust builds the dendrogram of the co-expression pipeline:
// average-linkage agglomerative clustering over a topological-overlap
// dissimilarity matrix.
//
// Every gene starts as its own cluster; the pair of clusters with the
// smallest average pairwise dissimilarity merges first, and inter-cluster
// distances are updated incrementally with the Lance–Williams average
// rule rather than recomputed from scratch. Ties in the minimum distance
// break on the lowest cluster index, so identical inputs always produce
// the identical tree.
//
// The result is a Dendrogram of exactly N−1 merge events with
// non-decreasing heights (average linkage admits no inversions). It is
// an immutable hand-off: the module detector walks it, nothing mutates
// it.
package hclust
