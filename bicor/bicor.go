package bicor

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/jessica-ewald/JQ-coexpression-network/expr"
)

// Correlate computes the similarity matrix of m under opts.
//
// Algorithm:
//  1. Reject zero-variance genes (DataQuality, all offenders named).
//  2. Normalize every gene row to a unit-length deviation vector:
//     biweight midweights on the MAD scale, or mean/stddev under the
//     Pearson mode or fallback. Rows are independent and processed in
//     parallel across opts.Workers goroutines.
//  3. One matrix product Z·Zᵀ yields all pairwise correlations.
//  4. Enforce symmetry, clamp to [-1,1], force the diagonal to 1, zero
//     and flag pairs touching a degenerate gene.
//
// Complexity: O(G·S) normalization + O(G²·S) product; O(G²) memory for
// the similarity matrix.
func Correlate(ctx context.Context, m *expr.Matrix, opts Options) (*Result, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if opts.Mode != Biweight && opts.Mode != Pearson {
		return nil, fmt.Errorf("bicor: mode %d: %w", opts.Mode, ErrBadMode)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("bicor: %w", err)
	}
	madTol := opts.MADTolerance
	if madTol <= 0 {
		madTol = DefaultMADTolerance
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultOptions().Workers
	}

	g, s := m.NumGenes(), m.NumSamples()
	z := mat.NewDense(g, s, nil)
	degenerate := make([]bool, g)
	fallback := make([]bool, g)

	// Stage 2: per-row normalization, chunked across workers.
	grp, gctx := errgroup.WithContext(ctx)
	chunk := (g + workers - 1) / workers
	for lo := 0; lo < g; lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > g {
			hi = g
		}
		grp.Go(func() error {
			buf := make([]float64, s) // scratch for medians, reused per row
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				row := m.RawRow(i)
				dst := z.RawRowView(i)
				switch {
				case opts.Mode == Pearson:
					degenerate[i] = !pearsonRow(dst, row)
				default:
					usedFallback, ok := biweightRow(dst, row, buf, madTol)
					fallback[i] = usedFallback
					degenerate[i] = !ok
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("bicor: %w", err)
	}

	// Stage 3: all pairwise correlations in one product.
	var prod mat.Dense
	prod.Mul(z, z.T())

	// Stage 4: explicit symmetry, clamping, diagonal, degeneracy flags.
	res := &Result{Sim: mat.NewSymDense(g, nil)}
	for i := 0; i < g; i++ {
		res.Sim.SetSym(i, i, 1)
		if fallback[i] {
			res.FallbackGenes++
		}
		for j := i + 1; j < g; j++ {
			if degenerate[i] || degenerate[j] {
				res.Sim.SetSym(i, j, 0)
				res.Degenerate = append(res.Degenerate, Pair{I: i, J: j})
				continue
			}
			v := 0.5 * (prod.At(i, j) + prod.At(j, i))
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			res.Sim.SetSym(i, j, v)
		}
	}
	return res, nil
}

// biweightRow writes the unit-length biweight deviation of row into dst.
// It reports whether the Pearson fallback was used (MAD below tol) and
// whether a usable vector was produced at all.
func biweightRow(dst, row, buf []float64, tol float64) (usedFallback, ok bool) {
	med := median(row, buf)
	for i, v := range row {
		buf[i] = math.Abs(v - med)
	}
	mad := median(buf, buf)
	if mad <= tol {
		// Extremely peaked expression: the robust scale collapses.
		return true, pearsonRow(dst, row)
	}

	scale := biweightScale * mad
	var norm float64
	for i, v := range row {
		u := (v - med) / scale
		var w float64
		if u > -1 && u < 1 {
			t := 1 - u*u
			w = t * t
		}
		d := (v - med) * w
		dst[i] = d
		norm += d * d
	}
	return false, normalize(dst, norm)
}

// pearsonRow writes the unit-length mean deviation of row into dst.
func pearsonRow(dst, row []float64) bool {
	var mean float64
	for _, v := range row {
		mean += v
	}
	mean /= float64(len(row))

	var norm float64
	for i, v := range row {
		d := v - mean
		dst[i] = d
		norm += d * d
	}
	return normalize(dst, norm)
}

// normalize scales dst to unit length; a vanishing norm means the gene
// is degenerate under the estimator and dst is zeroed instead.
func normalize(dst []float64, sumSquares float64) bool {
	if sumSquares <= 0 || math.IsNaN(sumSquares) || math.IsInf(sumSquares, 0) {
		for i := range dst {
			dst[i] = 0
		}
		return false
	}
	inv := 1 / math.Sqrt(sumSquares)
	for i := range dst {
		dst[i] *= inv
	}
	return true
}

// median computes the classical median of xs using buf as scratch.
// buf may alias xs; len(buf) must be ≥ len(xs).
func median(xs, buf []float64) float64 {
	n := len(xs)
	work := buf[:n]
	copy(work, xs)
	sort.Float64s(work)
	if n%2 == 1 {
		return work[n/2]
	}
	return 0.5 * (work[n/2-1] + work[n/2])
}
