package softpower_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/jessica-ewald/JQ-coexpression-network/adjacency"
	"github.com/jessica-ewald/JQ-coexpression-network/softpower"
)

// testSim builds a deterministic similarity matrix with a few hub genes
// and many weakly tied ones, so connectivities spread across bins.
func testSim(g int) *mat.SymDense {
	sim := mat.NewSymDense(g, nil)
	for i := 0; i < g; i++ {
		sim.SetSym(i, i, 1)
		for j := i + 1; j < g; j++ {
			// Hubs (low indices) correlate strongly, the tail weakly.
			v := 0.9/(1+0.3*float64(i)) - 0.015*float64(j-i)
			if v < -1 {
				v = -1
			}
			sim.SetSym(i, j, v)
		}
	}
	return sim
}

// TestScan_ReportShape verifies one fit row per candidate, in order,
// with sane summary statistics.
func TestScan_ReportShape(t *testing.T) {
	sim := testSim(40)
	cands := []float64{1, 2, 4, 8}
	report, err := softpower.Scan(context.Background(), sim, cands, softpower.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Fits, len(cands))

	for i, f := range report.Fits {
		assert.Equal(t, cands[i], f.Power)
		assert.GreaterOrEqual(t, f.MeanK, 0.0)
		assert.LessOrEqual(t, f.MedianK, f.MaxK)
		assert.GreaterOrEqual(t, f.FitIndex, -1.0)
		assert.LessOrEqual(t, f.FitIndex, 1.0)
		assert.False(t, math.IsNaN(f.FitIndex))
	}
}

// TestScan_MeanConnectivityDecreases verifies the soft threshold does
// its job: higher powers must not increase mean connectivity.
func TestScan_MeanConnectivityDecreases(t *testing.T) {
	sim := testSim(30)
	report, err := softpower.Scan(context.Background(), sim,
		[]float64{1, 2, 4, 8, 16}, softpower.DefaultOptions())
	require.NoError(t, err)

	for i := 1; i < len(report.Fits); i++ {
		assert.LessOrEqual(t, report.Fits[i].MeanK, report.Fits[i-1].MeanK,
			"mean connectivity must be non-increasing in power")
	}
}

// TestScan_BadParameters covers the ParameterInvalid surface, rejected
// before any matrix work.
func TestScan_BadParameters(t *testing.T) {
	sim := testSim(5)

	_, err := softpower.Scan(context.Background(), nil, []float64{2}, softpower.DefaultOptions())
	assert.ErrorIs(t, err, softpower.ErrNilSimilarity)

	_, err = softpower.Scan(context.Background(), sim, nil, softpower.DefaultOptions())
	assert.ErrorIs(t, err, softpower.ErrNoCandidates)

	_, err = softpower.Scan(context.Background(), sim, []float64{2, 0.5}, softpower.DefaultOptions())
	assert.ErrorIs(t, err, softpower.ErrBadCandidate)

	opts := softpower.DefaultOptions()
	opts.NBins = 1
	_, err = softpower.Scan(context.Background(), sim, []float64{2}, opts)
	assert.ErrorIs(t, err, softpower.ErrBadNBins)
}

// TestScan_Cancelled verifies a cancelled context aborts the scan.
func TestScan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := softpower.Scan(ctx, testSim(5), []float64{2, 4}, softpower.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRecommend verifies the smallest-crossing rule and the advisory
// path when no candidate reaches the target.
func TestRecommend(t *testing.T) {
	report := &softpower.Report{
		Type: adjacency.Signed,
		Fits: []softpower.PowerFit{
			{Power: 2, FitIndex: 0.41},
			{Power: 4, FitIndex: 0.91},
			{Power: 6, FitIndex: 0.95},
		},
	}

	fit, err := report.Recommend(0.90)
	require.NoError(t, err)
	assert.Equal(t, 4.0, fit.Power, "smallest power crossing the target wins")

	fit, err = report.Recommend(0.99)
	require.ErrorIs(t, err, softpower.ErrNoPowerReachedFit)
	assert.Equal(t, 6.0, fit.Power, "advisory still recommends the best fit")
}

// TestBest verifies tie-breaking toward the lower (sparser) power.
func TestBest(t *testing.T) {
	report := &softpower.Report{
		Fits: []softpower.PowerFit{
			{Power: 2, FitIndex: 0.8},
			{Power: 4, FitIndex: 0.8},
		},
	}
	assert.Equal(t, 2.0, report.Best().Power)
}

// TestDefaultCandidates pins the customary grid.
func TestDefaultCandidates(t *testing.T) {
	cands := softpower.DefaultCandidates()
	require.NotEmpty(t, cands)
	assert.Equal(t, 1.0, cands[0])
	assert.Equal(t, 20.0, cands[len(cands)-1])
	for i := 1; i < len(cands); i++ {
		assert.Greater(t, cands[i], cands[i-1])
	}
}
