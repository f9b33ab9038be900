package expr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MinSamples is the smallest sample count accepted for correlation work.
const MinSamples = 4

// Matrix is a gene-by-sample expression matrix with stable row labels.
// It is read-only after construction.
type Matrix struct {
	genes   []string
	samples []string
	index   map[string]int
	data    *mat.Dense // genes × samples, row-major
}

// New builds a Matrix from gene identifiers, sample identifiers and a
// row-per-gene table of expression values.
//
// Errors:
//   - ErrShape             — empty input or ragged rows.
//   - ErrTooFewSamples     — fewer than MinSamples columns.
//   - ErrDuplicateGene     — repeated or empty gene identifier.
//   - ErrNonFinite         — any NaN or ±Inf value (names the gene).
//
// Complexity: O(G·S) time and memory; the input rows are copied.
func New(genes, samples []string, rows [][]float64) (*Matrix, error) {
	g, s := len(genes), len(samples)
	if g == 0 || s == 0 || len(rows) != g {
		return nil, fmt.Errorf("expr: %d genes, %d samples, %d rows: %w", g, s, len(rows), ErrShape)
	}
	if s < MinSamples {
		return nil, fmt.Errorf("expr: %d samples (< %d): %w", s, MinSamples, ErrTooFewSamples)
	}

	index := make(map[string]int, g)
	data := mat.NewDense(g, s, nil)
	for i, id := range genes {
		if id == "" {
			return nil, fmt.Errorf("expr: row %d: %w", i, ErrDuplicateGene)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("expr: gene %q: %w", id, ErrDuplicateGene)
		}
		index[id] = i

		if len(rows[i]) != s {
			return nil, fmt.Errorf("expr: gene %q has %d values, want %d: %w", id, len(rows[i]), s, ErrShape)
		}
		for j, v := range rows[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("expr: gene %q sample %q: %w", id, samples[j], ErrNonFinite)
			}
			data.Set(i, j, v)
		}
	}

	return &Matrix{
		genes:   append([]string(nil), genes...),
		samples: append([]string(nil), samples...),
		index:   index,
		data:    data,
	}, nil
}

// NumGenes returns the number of gene rows.
func (m *Matrix) NumGenes() int { return len(m.genes) }

// NumSamples returns the number of sample columns.
func (m *Matrix) NumSamples() int { return len(m.samples) }

// Genes returns a copy of the gene identifiers in row order.
func (m *Matrix) Genes() []string { return append([]string(nil), m.genes...) }

// Samples returns a copy of the sample identifiers in column order.
func (m *Matrix) Samples() []string { return append([]string(nil), m.samples...) }

// Gene returns the identifier of row i.
func (m *Matrix) Gene(i int) string { return m.genes[i] }

// GeneIndex returns the row index of a gene identifier.
func (m *Matrix) GeneIndex(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// At returns the expression of gene row i in sample column j.
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// RawRow returns the backing slice of row i. The slice is a view, not a
// copy — callers must treat it as read-only.
func (m *Matrix) RawRow(i int) []float64 { return m.data.RawRowView(i) }

// ZeroVarianceGenes returns the identifiers of all rows whose values are
// constant across samples. Such rows have undefined correlation with
// every other gene and must be filtered upstream.
//
// Complexity: O(G·S).
func (m *Matrix) ZeroVarianceGenes() []string {
	var bad []string
	for i, id := range m.genes {
		row := m.data.RawRowView(i)
		first := row[0]
		constant := true
		for _, v := range row[1:] {
			if v != first {
				constant = false
				break
			}
		}
		if constant {
			bad = append(bad, id)
		}
	}
	return bad
}

// Validate returns ErrZeroVariance naming every constant gene row, or
// nil when all rows carry variance.
func (m *Matrix) Validate() error {
	if bad := m.ZeroVarianceGenes(); len(bad) != 0 {
		return fmt.Errorf("expr: genes %v: %w", bad, ErrZeroVariance)
	}
	return nil
}

// Subset returns a new Matrix restricted to the given gene identifiers,
// in the given order. Unknown identifiers yield ErrUnknownGene.
func (m *Matrix) Subset(genes []string) (*Matrix, error) {
	rows := make([][]float64, len(genes))
	for i, id := range genes {
		ri, ok := m.index[id]
		if !ok {
			return nil, fmt.Errorf("expr: gene %q: %w", id, ErrUnknownGene)
		}
		rows[i] = append([]float64(nil), m.data.RawRowView(ri)...)
	}
	return New(genes, m.samples, rows)
}

// PermuteGenes returns a new Matrix whose row i is the receiver's row
// perm[i]. perm must be a bijection on [0, NumGenes). Used by
// permutation-invariance checks and external resampling loops.
func (m *Matrix) PermuteGenes(perm []int) (*Matrix, error) {
	g := m.NumGenes()
	if len(perm) != g {
		return nil, fmt.Errorf("expr: permutation length %d, want %d: %w", len(perm), g, ErrBadPermutation)
	}
	seen := make([]bool, g)
	genes := make([]string, g)
	rows := make([][]float64, g)
	for i, p := range perm {
		if p < 0 || p >= g || seen[p] {
			return nil, fmt.Errorf("expr: permutation entry %d at position %d: %w", p, i, ErrBadPermutation)
		}
		seen[p] = true
		genes[i] = m.genes[p]
		rows[i] = append([]float64(nil), m.data.RawRowView(p)...)
	}
	return New(genes, m.samples, rows)
}
