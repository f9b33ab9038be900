// Package tom converts a weighted adjacency matrix into the topological
// overlap dissimilarity used for clustering.
//
// The topological overlap of genes i and j rewards shared neighbourhood:
//
//	tom_ij  = (Σ_{u≠i,j} a_iu·a_ju + a_ij) / (min(k_i,k_j) + 1 − a_ij)
//	diss_ij = 1 − tom_ij
//
// so a pair is close only when it is both directly connected and wired
// to the same neighbours, which suppresses single spurious strong edges.
//
// The shared-neighbour sums for a block of rows are one matrix product
// (block × G of the zero-diagonal adjacency against itself), so the
// naive O(G³) triple loop becomes a sequence of BLAS products. Peak
// memory is bounded by the block size: only one block product is
// resident per worker, on top of the input and output G×G matrices.
package tom

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// DefaultBlockSize is the default number of rows per block product.
const DefaultBlockSize = 512

var (
	// ErrNilAdjacency indicates a nil adjacency matrix.
	ErrNilAdjacency = errors.New("tom: adjacency matrix is nil")
	// ErrBadBlockSize indicates a negative block size.
	ErrBadBlockSize = errors.New("tom: block size must be positive")
)

// Options configures Dissimilarity.
type Options struct {
	// BlockSize is the number of adjacency rows per matrix-product block.
	// Zero falls back to DefaultBlockSize; smaller values trade speed for
	// a lower peak memory footprint.
	BlockSize int
	// Workers bounds the concurrent block products. Non-positive values
	// fall back to GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{BlockSize: DefaultBlockSize, Workers: runtime.GOMAXPROCS(0)}
}

// Dissimilarity computes the topological overlap dissimilarity matrix of
// adj: symmetric, entries in [0,1], diagonal exactly 0. The input is
// read-only; a fresh matrix is returned.
//
// A non-positive denominator (possible only for isolated gene pairs)
// yields zero overlap — maximum dissimilarity — rather than an error.
//
// Complexity: O(G³) arithmetic via ⌈G/BlockSize⌉ block products running
// on up to Workers goroutines; O(G²) memory for input and output plus
// O(BlockSize·G) scratch per worker.
func Dissimilarity(ctx context.Context, adj *mat.SymDense, opts Options) (*mat.SymDense, error) {
	if adj == nil {
		return nil, ErrNilAdjacency
	}
	block := opts.BlockSize
	if block == 0 {
		block = DefaultBlockSize
	}
	if block < 0 {
		return nil, fmt.Errorf("tom: block size %d: %w", opts.BlockSize, ErrBadBlockSize)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g := adj.SymmetricDim()

	// Zero-diagonal copy: with a_ii = 0 the product A₀·A₀ already
	// excludes the u=i and u=j terms of the shared-neighbour sum.
	a0 := mat.NewDense(g, g, nil)
	k := make([]float64, g)
	for i := 0; i < g; i++ {
		var sum float64
		for j := 0; j < g; j++ {
			if j == i {
				continue
			}
			v := adj.At(i, j)
			a0.Set(i, j, v)
			sum += v
		}
		k[i] = sum
	}

	diss := mat.NewSymDense(g, nil)
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for lo := 0; lo < g; lo += block {
		lo, hi := lo, lo+block
		if hi > g {
			hi = g
		}
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var prod mat.Dense
			prod.Mul(a0.Slice(lo, hi, 0, g), a0)
			for i := lo; i < hi; i++ {
				for j := i + 1; j < g; j++ {
					aij := a0.At(i, j)
					den := k[i]
					if k[j] < den {
						den = k[j]
					}
					den += 1 - aij

					var overlap float64
					if den > 0 {
						overlap = (prod.At(i-lo, j) + aij) / den
					}
					if overlap < 0 {
						overlap = 0
					} else if overlap > 1 {
						overlap = 1
					}
					diss.SetSym(i, j, 1-overlap)
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("tom: %w", err)
	}
	return diss, nil
}
