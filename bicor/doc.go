// Package bicor computes the robust gene-by-gene similarity matrix at
// the head of the co-expression pipeline.
//
// The default estimator is the biweight midcorrelation: each gene's
// sample vector is centered on its median and down-weighted by distance
// from the median (Tukey biweight on the MAD scale), so a handful of
// outlier samples cannot dominate the estimate for any pair. Genes whose
// MAD is (near-)zero — extremely peaked expression — fall back to the
// ordinary Pearson estimator for that gene alone.
//
// Because the per-gene weighting is independent of the pairing, every
// pairwise correlation is a dot product of normalized rows, and the
// whole G×G similarity matrix is a single matrix product. Symmetry and
// the unit diagonal are enforced explicitly rather than trusted to
// floating point.
//
// Failure surface:
//   - zero-variance genes are fatal (expr.ErrZeroVariance, all offenders
//     named) — their correlation is undefined;
//   - genes that stay degenerate even under the fallback estimator are
//     flagged per pair in Result.Degenerate and the computation
//     continues; downstream stages treat flagged pairs as maximally
//     dissimilar.
package bicor
