package expr_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jessica-ewald/JQ-coexpression-network/expr"
)

func validRows() ([]string, []string, [][]float64) {
	genes := []string{"g1", "g2", "g3"}
	samples := []string{"s1", "s2", "s3", "s4"}
	rows := [][]float64{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{1, 3, 2, 4},
	}
	return genes, samples, rows
}

// TestNew_Valid verifies a well-formed matrix constructs with the
// expected shape and lookups.
func TestNew_Valid(t *testing.T) {
	genes, samples, rows := validRows()
	m, err := expr.New(genes, samples, rows)
	require.NoError(t, err)

	assert.Equal(t, 3, m.NumGenes())
	assert.Equal(t, 4, m.NumSamples())
	assert.Equal(t, 2.0, m.At(0, 1))
	i, ok := m.GeneIndex("g2")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, []float64{4, 3, 2, 1}, m.RawRow(1))
}

// TestNew_TooFewSamples verifies the MinSamples floor.
func TestNew_TooFewSamples(t *testing.T) {
	_, err := expr.New([]string{"g1"}, []string{"s1", "s2", "s3"}, [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, expr.ErrTooFewSamples)
}

// TestNew_DuplicateGene verifies repeated and empty identifiers are
// rejected by name.
func TestNew_DuplicateGene(t *testing.T) {
	genes, samples, rows := validRows()
	genes[2] = "g1"
	_, err := expr.New(genes, samples, rows)
	require.ErrorIs(t, err, expr.ErrDuplicateGene)
	assert.Contains(t, err.Error(), "g1")

	genes[2] = ""
	_, err = expr.New(genes, samples, rows)
	assert.ErrorIs(t, err, expr.ErrDuplicateGene)
}

// TestNew_RaggedRows verifies non-rectangular input is a shape error.
func TestNew_RaggedRows(t *testing.T) {
	genes, samples, rows := validRows()
	rows[1] = []float64{1, 2}
	_, err := expr.New(genes, samples, rows)
	assert.ErrorIs(t, err, expr.ErrShape)
}

// TestNew_NonFinite verifies NaN and Inf values are rejected naming the
// gene and sample.
func TestNew_NonFinite(t *testing.T) {
	genes, samples, rows := validRows()
	rows[2][3] = math.NaN()
	_, err := expr.New(genes, samples, rows)
	require.ErrorIs(t, err, expr.ErrNonFinite)
	assert.Contains(t, err.Error(), "g3")
	assert.Contains(t, err.Error(), "s4")
}

// TestValidate_ZeroVariance verifies every constant gene row is named,
// not just the first.
func TestValidate_ZeroVariance(t *testing.T) {
	m, err := expr.New(
		[]string{"flat1", "ok", "flat2"},
		[]string{"s1", "s2", "s3", "s4"},
		[][]float64{
			{7, 7, 7, 7},
			{1, 2, 3, 4},
			{0, 0, 0, 0},
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"flat1", "flat2"}, m.ZeroVarianceGenes())
	err = m.Validate()
	require.ErrorIs(t, err, expr.ErrZeroVariance)
	assert.Contains(t, err.Error(), "flat1")
	assert.Contains(t, err.Error(), "flat2")
}

// TestSubset verifies reordering selection and the unknown-gene error.
func TestSubset(t *testing.T) {
	genes, samples, rows := validRows()
	m, err := expr.New(genes, samples, rows)
	require.NoError(t, err)

	sub, err := m.Subset([]string{"g3", "g1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"g3", "g1"}, sub.Genes())
	assert.Equal(t, []float64{1, 3, 2, 4}, sub.RawRow(0))

	_, err = m.Subset([]string{"nope"})
	assert.ErrorIs(t, err, expr.ErrUnknownGene)
}

// TestPermuteGenes verifies row permutation and bijection checking.
func TestPermuteGenes(t *testing.T) {
	genes, samples, rows := validRows()
	m, err := expr.New(genes, samples, rows)
	require.NoError(t, err)

	p, err := m.PermuteGenes([]int{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"g3", "g1", "g2"}, p.Genes())
	assert.Equal(t, m.RawRow(2), p.RawRow(0))

	_, err = m.PermuteGenes([]int{0, 0, 1})
	assert.ErrorIs(t, err, expr.ErrBadPermutation)
	_, err = m.PermuteGenes([]int{0, 1})
	assert.ErrorIs(t, err, expr.ErrBadPermutation)
}

// TestReadCSV verifies the cleaned-matrix CSV layout round-trips and
// parse failures carry gene/sample context.
func TestReadCSV(t *testing.T) {
	in := strings.Join([]string{
		"gene_id,s1,s2,s3,s4",
		"g1,1.0,2.0,3.0,4.0",
		"g2,4.0,3.0,2.0,1.0",
	}, "\n")
	m, err := expr.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, m.Genes())
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, m.Samples())
	assert.Equal(t, 3.0, m.At(0, 2))

	bad := "gene_id,s1,s2,s3,s4\ng1,1.0,oops,3.0,4.0\n"
	_, err = expr.ReadCSV(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "g1")
	assert.Contains(t, err.Error(), "s2")
}
