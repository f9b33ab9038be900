package softpower

import (
	"errors"
	"fmt"

	"github.com/jessica-ewald/JQ-coexpression-network/adjacency"
)

const (
	// DefaultNBins is the number of connectivity bins in the log-log fit.
	DefaultNBins = 10
	// DefaultTargetFit is the conventional scale-free fit threshold.
	DefaultTargetFit = 0.90
)

var (
	// ErrNoCandidates indicates an empty candidate power list.
	ErrNoCandidates = errors.New("softpower: candidate power list is empty")
	// ErrBadCandidate indicates a candidate power below 1 or non-finite.
	ErrBadCandidate = errors.New("softpower: candidate powers must be finite and >= 1")
	// ErrBadNBins indicates fewer than two connectivity bins.
	ErrBadNBins = errors.New("softpower: need at least two connectivity bins")
	// ErrNilSimilarity indicates a nil similarity matrix.
	ErrNilSimilarity = errors.New("softpower: similarity matrix is nil")

	// ErrNoPowerReachedFit is the non-fatal advisory returned by Recommend
	// when no scanned power reaches the target fit. The recommendation it
	// accompanies is still usable, just low-confidence.
	ErrNoPowerReachedFit = errors.New("softpower: no candidate power reached the target scale-free fit")
)

// Options configures Scan.
type Options struct {
	// Type is the network sign convention used to build each trial
	// adjacency matrix; Signed by default.
	Type adjacency.Type
	// NBins is the number of equal-width connectivity bins for the
	// log-log regression. Zero falls back to DefaultNBins.
	NBins int
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{Type: adjacency.Signed, NBins: DefaultNBins}
}

// DefaultCandidates returns the customary scan grid: every integer power
// 1..10, then even powers to 20.
func DefaultCandidates() []float64 {
	return []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 12, 14, 16, 18, 20}
}

// PowerFit is one row of the candidate power report.
type PowerFit struct {
	// Power is the scanned soft-thresholding exponent.
	Power float64
	// FitIndex is the sign-corrected R² of the scale-free fit: R² when
	// the fitted slope is negative, −R² when it is "wrong-signed".
	FitIndex float64
	// Slope is the fitted slope of log10(freq) vs log10(connectivity).
	Slope float64
	// MeanK, MedianK and MaxK summarize the per-gene connectivities.
	MeanK, MedianK, MaxK float64
}

// Report is the read-only outcome of a power scan, one PowerFit per
// scanned candidate, in scan order.
type Report struct {
	// Type records the sign convention the scan was run under.
	Type adjacency.Type
	// Fits holds one entry per candidate power.
	Fits []PowerFit
}

// Best returns the fit row with the highest FitIndex, breaking ties by
// lower power (sparser network for equal credibility).
func (r *Report) Best() PowerFit {
	best := r.Fits[0]
	for _, f := range r.Fits[1:] {
		if f.FitIndex > best.FitIndex {
			best = f
		}
	}
	return best
}

// Recommend returns the smallest scanned power whose FitIndex reaches
// target. When none does, it returns the best-fitting power together
// with ErrNoPowerReachedFit — an advisory, not a failure: callers that
// accept low-confidence selections may proceed with the returned power.
func (r *Report) Recommend(target float64) (PowerFit, error) {
	for _, f := range r.Fits {
		if f.FitIndex >= target {
			return f, nil
		}
	}
	best := r.Best()
	return best, fmt.Errorf("softpower: target %.2f, best %.2f at power %g: %w",
		target, best.FitIndex, best.Power, ErrNoPowerReachedFit)
}
