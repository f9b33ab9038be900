// Package adjacency applies the soft-thresholding power transform that
// turns a similarity matrix into a weighted network adjacency matrix.
//
// Signed networks rescale similarity from [-1,1] to [0,1] via (s+1)/2
// before exponentiation, so anti-correlated genes land near 0 instead of
// folding onto correlated ones; unsigned networks raise |s| directly.
// Raising to a power ≥ 1 suppresses weak correlations faster than strong
// ones — a soft threshold instead of a hard cutoff.
package adjacency

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Type selects the sign convention of the network.
type Type int

const (
	// Signed maps similarity through (s+1)/2 before the power (default).
	Signed Type = iota
	// Unsigned uses the correlation magnitude |s|.
	Unsigned
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Signed:
		return "signed"
	case Unsigned:
		return "unsigned"
	default:
		return "unknown"
	}
}

var (
	// ErrBadPower indicates a soft-thresholding power below 1.
	ErrBadPower = errors.New("adjacency: power must be >= 1")
	// ErrBadType indicates a Type outside {Signed, Unsigned}.
	ErrBadType = errors.New("adjacency: unsupported network type")
	// ErrNilSimilarity indicates a nil similarity matrix.
	ErrNilSimilarity = errors.New("adjacency: similarity matrix is nil")
)

// Build raises the similarity matrix to the chosen power under the given
// sign convention. The result is symmetric with entries in [0,1] and the
// diagonal forced to 1 (self-adjacency by convention; connectivity sums
// exclude it). Pure element-wise transform, O(G²).
func Build(sim *mat.SymDense, power float64, typ Type) (*mat.SymDense, error) {
	if sim == nil {
		return nil, ErrNilSimilarity
	}
	if power < 1 || math.IsNaN(power) || math.IsInf(power, 0) {
		return nil, fmt.Errorf("adjacency: power %v: %w", power, ErrBadPower)
	}
	if typ != Signed && typ != Unsigned {
		return nil, fmt.Errorf("adjacency: type %d: %w", typ, ErrBadType)
	}

	g := sim.SymmetricDim()
	adj := mat.NewSymDense(g, nil)
	for i := 0; i < g; i++ {
		adj.SetSym(i, i, 1)
		for j := i + 1; j < g; j++ {
			s := sim.At(i, j)
			if typ == Signed {
				s = (s + 1) / 2
			} else {
				s = math.Abs(s)
			}
			// Clamp before the power: tiny float drift outside the legal
			// similarity range must not leak through math.Pow.
			if s < 0 {
				s = 0
			} else if s > 1 {
				s = 1
			}
			adj.SetSym(i, j, math.Pow(s, power))
		}
	}
	return adj, nil
}

// Connectivity returns each gene's adjacency-weighted degree: the row
// sum excluding the diagonal self-adjacency.
func Connectivity(adj *mat.SymDense) []float64 {
	g := adj.SymmetricDim()
	k := make([]float64, g)
	for i := 0; i < g; i++ {
		var sum float64
		for j := 0; j < g; j++ {
			if j == i {
				continue
			}
			sum += adj.At(i, j)
		}
		k[i] = sum
	}
	return k
}
