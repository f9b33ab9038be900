// Package pipeline chains the network-construction stages into the full
// module-detection run: robust correlation → soft-threshold power scan →
// (power choice) → signed adjacency → topological overlap dissimilarity
// → average-linkage dendrogram → dynamic branch-cut module assignment.
//
// Stages hand whole immutable values to each other — no stage mutates a
// matrix it did not produce — and the single run-wide concession to
// statefulness is this package's masking of numerically degenerate gene
// pairs (flagged by the correlation stage) to maximum dissimilarity
// before clustering.
//
// The chosen power is a human decision: set Config.Power explicitly, or
// leave it 0 to accept the smallest scanned power reaching
// Config.TargetFit. When no power reaches the target the run proceeds
// with the best-fitting power and records the advisory; it never fails
// on fit quality alone.
//
// The package also carries the run's operational surface: YAML config
// loading, slog stage logging and Prometheus stage metrics.
package pipeline
