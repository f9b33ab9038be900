// Package coexpression builds weighted gene co-expression networks from
// expression matrices and partitions genes into modules of coordinated
// expression.
//
// 🚀 What does it do?
//
//	Starting from a cleaned genes × samples expression matrix, the
//	pipeline runs:
//	  • robust pairwise correlation (biweight midcorrelation)
//	  • soft-threshold power selection (scale-free topology fit)
//	  • signed/unsigned weighted adjacency
//	  • topological overlap dissimilarity (TOM)
//	  • average-linkage hierarchical clustering
//	  • dynamic branch-cut module detection (deepSplit sweeps)
//
// ✨ Design:
//
//   - Each stage is a pure function: matrix in, matrix (or tree) out,
//     independently testable, no shared mutable state.
//   - Heavy O(G²)/O(G³) stages run data-parallel and blockwise to bound
//     peak memory on tens of thousands of genes.
//   - Deterministic throughout — identical inputs give identical trees
//     and identical module partitions.
//
// The stages live in one package each:
//
//	expr/      — labeled expression matrix, validation, CSV ingestion
//	bicor/     — robust correlation → similarity matrix
//	softpower/ — candidate power scan → scale-free fit report
//	adjacency/ — soft-thresholding power transform
//	tom/       — topological overlap dissimilarity
//	hclust/    — average-linkage dendrogram
//	treecut/   — dynamic branch pruning → module assignment
//	pipeline/  — orchestration, config, logging, metrics, CSV outputs
//
// cmd/coexpressnet is the batch CLI over the whole chain.
package coexpression
