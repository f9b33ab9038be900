// Package treecut partitions a dendrogram into co-expression modules by
// adaptive branch pruning, instead of a single fixed horizontal cut.
//
// Walking down from the root, a branch that merges above the CutHeight
// ceiling is never a module — its two sub-branches are examined
// independently. Within the ceiling, a branch splits into its two
// children only when both children are large enough (MinClusterSize) and
// both are distinct: a child is distinct when its own merge height stays
// within a DeepSplit-controlled fraction of the parent height. Higher
// DeepSplit tolerates less-distinct branches as separate modules (more,
// smaller modules); lower DeepSplit merges more aggressively.
//
// The DeepSplit→sensitivity mapping is implementation-defined by the
// published contract (only the qualitative monotone behaviour is fixed):
// this package uses the scatter ladder {0.64, 0.73, 0.82, 0.91}. Because
// a split permitted at one level is permitted at every higher level, and
// each split turns one module into two, the number of detected modules
// is non-decreasing in DeepSplit for a fixed dendrogram.
//
// Genes left outside every finalized module — branches that never reach
// MinClusterSize, or that merge above the ceiling — carry the
// distinguished Unassigned label 0. Label numbers are arbitrary (size
// rank); only the partition is semantically meaningful.
package treecut
