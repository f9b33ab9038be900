// Package expr defines the labeled expression matrix that feeds the
// co-expression pipeline: rows are genes (unique identifiers), columns
// are samples, values are normalized real expression levels.
//
// The matrix is an immutable hand-off: once constructed it is never
// mutated, and every downstream stage treats it as read-only. Derived
// matrices (Subset, PermuteGenes) are fresh copies.
//
// Construction validates the data-quality contract up front:
//   - rectangular, finite values (no NaN/Inf),
//   - unique, non-empty gene identifiers,
//   - at least MinSamples samples (a stable correlation needs ≥ 4).
//
// Zero-variance rows are legal to construct but poisonous to correlate;
// ZeroVarianceGenes reports them so the correlation stage can reject
// them by name instead of emitting NaN.
package expr
