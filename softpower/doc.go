// Package softpower scans candidate soft-thresholding powers and
// reports, for each, how well the resulting network approximates a
// scale-free topology and how dense it remains.
//
// For every candidate power the similarity matrix is transformed into an
// adjacency matrix, per-gene connectivities are binned, and a linear
// model is fitted to log10(frequency) versus log10(connectivity). The
// fit index is the regression R² corrected by the sign of the slope: a
// genuinely scale-free network has a decreasing degree distribution, so
// "wrong-signed" fits are penalised below zero.
//
// The package deliberately does not choose a power. Selection is a
// human-in-the-loop decision balancing network sparsity against fit
// quality; Recommend encodes the usual guidance (smallest power crossing
// a target fit, commonly 0.90) and degrades to a non-fatal advisory when
// no candidate reaches the target.
package softpower
