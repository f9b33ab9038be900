package softpower

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/jessica-ewald/JQ-coexpression-network/adjacency"
)

// Scan evaluates every candidate power independently against sim and
// returns one PowerFit per candidate, in order. No shared state crosses
// candidates; a context cancellation aborts the scan between candidates
// with no partial-output contract.
//
// Parameter errors (empty list, power < 1, bad bin count) are rejected
// before any matrix work begins.
//
// Complexity: O(|candidates| · G²) time, one G×G trial adjacency
// resident at a time.
func Scan(ctx context.Context, sim *mat.SymDense, candidates []float64, opts Options) (*Report, error) {
	if sim == nil {
		return nil, ErrNilSimilarity
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	for _, p := range candidates {
		if p < 1 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("softpower: power %v: %w", p, ErrBadCandidate)
		}
	}
	nbins := opts.NBins
	if nbins == 0 {
		nbins = DefaultNBins
	}
	if nbins < 2 {
		return nil, fmt.Errorf("softpower: %d bins: %w", opts.NBins, ErrBadNBins)
	}

	report := &Report{Type: opts.Type, Fits: make([]PowerFit, 0, len(candidates))}
	for _, p := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("softpower: scan aborted at power %g: %w", p, err)
		}
		adj, err := adjacency.Build(sim, p, opts.Type)
		if err != nil {
			return nil, fmt.Errorf("softpower: power %g: %w", p, err)
		}
		k := adjacency.Connectivity(adj)

		fit := PowerFit{Power: p}
		fit.FitIndex, fit.Slope = scaleFreeFit(k, nbins)
		fit.MeanK, fit.MedianK, fit.MaxK = summarize(k)
		report.Fits = append(report.Fits, fit)
	}
	return report, nil
}

// scaleFreeFit bins the connectivities into nbins equal-width intervals,
// regresses log10(frequency) on log10(mean connectivity per bin), and
// returns the sign-corrected R² together with the fitted slope. Empty
// bins and non-positive connectivities are skipped; fewer than two
// usable bins yield a zero fit.
func scaleFreeFit(k []float64, nbins int) (fitIndex, slope float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range k {
		if v <= 0 {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if !(hi > lo) {
		return 0, 0
	}

	width := (hi - lo) / float64(nbins)
	counts := make([]float64, nbins)
	sums := make([]float64, nbins)
	var total float64
	for _, v := range k {
		if v <= 0 {
			continue
		}
		b := int((v - lo) / width)
		if b >= nbins { // v == hi lands past the last interval
			b = nbins - 1
		}
		counts[b]++
		sums[b] += v
		total++
	}

	var xs, ys []float64
	for b := 0; b < nbins; b++ {
		if counts[b] == 0 {
			continue
		}
		meanK := sums[b] / counts[b]
		if meanK <= 0 {
			continue
		}
		xs = append(xs, math.Log10(meanK))
		ys = append(ys, math.Log10(counts[b]/total))
	}
	if len(xs) < 2 {
		return 0, 0
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) {
		return 0, beta
	}
	if beta > 0 {
		// Wrong-signed fit: frequency rising with connectivity is the
		// opposite of scale-free, so the index penalises it.
		return -r2, beta
	}
	return r2, beta
}

// summarize returns the mean, median and maximum of the connectivities.
func summarize(k []float64) (mean, med, max float64) {
	sorted := append([]float64(nil), k...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	n := len(sorted)
	mean = sum / float64(n)
	if n%2 == 1 {
		med = sorted[n/2]
	} else {
		med = 0.5 * (sorted[n/2-1] + sorted[n/2])
	}
	max = sorted[n-1]
	return mean, med, max
}
