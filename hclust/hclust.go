package hclust

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNilMatrix indicates a nil dissimilarity matrix.
	ErrNilMatrix = errors.New("hclust: dissimilarity matrix is nil")
	// ErrBadMatrix indicates a NaN, infinite or negative dissimilarity.
	ErrBadMatrix = errors.New("hclust: dissimilarities must be finite and non-negative")
)

// parallelThreshold is the active-cluster count above which the minimum
// scan is spread across workers; below it the sequential scan wins.
const parallelThreshold = 128

// Options configures Cluster.
type Options struct {
	// Workers bounds the goroutines of the parallel minimum scan.
	// Non-positive values fall back to GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{Workers: runtime.GOMAXPROCS(0)}
}

// Cluster builds the average-linkage dendrogram of diss.
//
// Stage 1 validates the matrix (finite, non-negative; symmetry is given
// by the SymDense type). Stage 2 copies it into a working square —
// Cluster never mutates its input — and then runs G−1 merge rounds:
// scan for the minimum-distance active pair (the pair holding the
// lowest node ids wins ties), record the merge with its smaller node id
// first, fold the absorbed cluster into the survivor with the
// Lance–Williams average update. The scan is chunked across workers once
// enough clusters are active for that to pay.
//
// Complexity: O(G²) memory, O(G³) worst-case time dominated by the
// minimum scans (each scan O(G²), shared across Workers).
func Cluster(ctx context.Context, diss *mat.SymDense, opts Options) (*Dendrogram, error) {
	if diss == nil {
		return nil, ErrNilMatrix
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	n := diss.SymmetricDim()
	// Working copy, plus validation in the same pass.
	d := make([][]float64, n)
	for i := 0; i < n; i++ {
		d[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v := diss.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("hclust: entry (%d,%d)=%v: %w", i, j, v, ErrBadMatrix)
			}
			d[i][j] = v
		}
	}

	active := make([]bool, n)
	size := make([]int, n)
	node := make([]int, n) // current dendrogram node id held by each slot
	for i := range active {
		active[i] = true
		size[i] = 1
		node[i] = i
	}

	merges := make([]Merge, 0, n-1)
	remaining := n
	lastH := 0.0
	for m := 0; remaining > 1; m++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("hclust: clustering aborted after %d merges: %w", m, err)
		}

		bi, bj, bh := minPair(d, active, node, remaining, workers)
		if bh < lastH {
			// Lance–Williams averages cannot drop below the previous merge
			// height except by float rounding; pin the invariant exactly.
			bh = lastH
		}
		lastH = bh

		// Record the merge before the update: node ids, not slot ids,
		// smaller id first.
		left, right := node[bi], node[bj]
		if left > right {
			left, right = right, left
		}
		merges = append(merges, Merge{Left: left, Right: right, Height: bh})

		// Lance–Williams average-linkage update into slot bi.
		ni, nj := float64(size[bi]), float64(size[bj])
		inv := 1 / (ni + nj)
		for k := 0; k < n; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			v := (ni*d[bi][k] + nj*d[bj][k]) * inv
			d[bi][k] = v
			d[k][bi] = v
		}
		active[bj] = false
		size[bi] += size[bj]
		node[bi] = n + m
		remaining--
	}

	return NewDendrogram(n, merges)
}

// minPair returns the active slot pair with the smallest distance,
// breaking ties on the lowest pair of dendrogram node ids currently
// held by the slots. The scan is sequential for small active sets and
// chunked across workers otherwise; the reduction order is fixed, so
// the result is deterministic either way.
func minPair(d [][]float64, active []bool, node []int, remaining, workers int) (int, int, float64) {
	n := len(d)
	if remaining <= parallelThreshold || workers <= 1 {
		return scanRange(d, active, node, 0, n)
	}

	chunk := (n + workers - 1) / workers
	type best struct {
		i, j int
		h    float64
	}
	results := make([]best, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= n {
			results[w] = best{-1, -1, math.Inf(1)}
			continue
		}
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			i, j, h := scanRange(d, active, node, lo, hi)
			results[w] = best{i, j, h}
		}(w, lo, hi)
	}
	wg.Wait()

	bi, bj, bh := -1, -1, math.Inf(1)
	for _, r := range results {
		if r.i < 0 {
			continue
		}
		if r.h < bh || (r.h == bh && nodePairLess(node, r.i, r.j, bi, bj)) {
			bi, bj, bh = r.i, r.j, r.h
		}
	}
	return bi, bj, bh
}

// scanRange scans rows [lo,hi) for the minimum active pair (slot i<j, j
// over the whole matrix), breaking distance ties by the lowest node id
// pair.
func scanRange(d [][]float64, active []bool, node []int, lo, hi int) (int, int, float64) {
	bi, bj, bh := -1, -1, math.Inf(1)
	for i := lo; i < hi; i++ {
		if !active[i] {
			continue
		}
		row := d[i]
		for j := i + 1; j < len(d); j++ {
			if !active[j] {
				continue
			}
			if row[j] < bh || (row[j] == bh && nodePairLess(node, i, j, bi, bj)) {
				bi, bj, bh = i, j, row[j]
			}
		}
	}
	return bi, bj, bh
}

// nodePairLess orders two slot pairs by the node ids they hold: the
// pair whose smaller node id is lower wins, then the pair whose larger
// node id is lower.
func nodePairLess(node []int, ai, aj, bi, bj int) bool {
	if bi < 0 {
		return true
	}
	aLo, aHi := node[ai], node[aj]
	if aLo > aHi {
		aLo, aHi = aHi, aLo
	}
	bLo, bHi := node[bi], node[bj]
	if bLo > bHi {
		bLo, bHi = bHi, bLo
	}
	if aLo != bLo {
		return aLo < bLo
	}
	return aHi < bHi
}
