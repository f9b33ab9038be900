package pipeline_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jessica-ewald/JQ-coexpression-network/hclust"
	"github.com/jessica-ewald/JQ-coexpression-network/pipeline"
	"github.com/jessica-ewald/JQ-coexpression-network/softpower"
	"github.com/jessica-ewald/JQ-coexpression-network/treecut"
)

// TestWritePowerReportCSV checks the header and row shape of the scan
// report output.
func TestWritePowerReportCSV(t *testing.T) {
	r := &softpower.Report{
		Fits: []softpower.PowerFit{
			{Power: 1, FitIndex: 0.42, Slope: -0.8, MeanK: 3.2, MedianK: 3.0, MaxK: 5.1},
			{Power: 6, FitIndex: 0.93, Slope: -1.5, MeanK: 0.9, MedianK: 0.7, MaxK: 2.4},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, pipeline.WritePowerReportCSV(&buf, r))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "power,fit_index,slope,mean_k,median_k,max_k", lines[0])
	assert.Equal(t, "1,0.4200,-0.8000,3.2000,3.0000,5.1000", lines[1])
	assert.Equal(t, "6,0.9300,-1.5000,0.9000,0.7000,2.4000", lines[2])
}

// fourLeafAssignments builds two assignments over the same four genes
// by cutting a small dendrogram at two sensitivity levels.
func fourLeafAssignments(t *testing.T) []*treecut.Assignment {
	t.Helper()
	d, err := hclust.NewDendrogram(4, []hclust.Merge{
		{Left: 0, Right: 1, Height: 0.1},
		{Left: 2, Right: 3, Height: 0.2},
		{Left: 4, Right: 5, Height: 1.0},
	})
	require.NoError(t, err)

	out, err := treecut.SweepDeepSplit(d, treecut.Options{MinClusterSize: 2, CutHeight: 0.99}, []int{0, 2})
	require.NoError(t, err)
	return out
}

// TestWriteModulesCSV checks the per-gene module table, one column per
// swept level.
func TestWriteModulesCSV(t *testing.T) {
	genes := []string{"g1", "g2", "g3", "g4"}
	assignments := fourLeafAssignments(t)

	var buf bytes.Buffer
	require.NoError(t, pipeline.WriteModulesCSV(&buf, genes, []int{0, 2}, assignments))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "gene_id,module_ds0,module_ds2", lines[0])
	for i, id := range genes {
		assert.True(t, strings.HasPrefix(lines[i+1], id+","), "row %d: %s", i+1, lines[i+1])
	}
}

// TestWriteModulesCSV_Mismatch rejects inconsistent level/assignment
// pairings and wrong gene counts.
func TestWriteModulesCSV_Mismatch(t *testing.T) {
	genes := []string{"g1", "g2", "g3", "g4"}
	assignments := fourLeafAssignments(t)

	var buf bytes.Buffer
	err := pipeline.WriteModulesCSV(&buf, genes, []int{0}, assignments)
	assert.ErrorIs(t, err, pipeline.ErrBadConfig)

	err = pipeline.WriteModulesCSV(&buf, genes[:3], []int{0, 2}, assignments)
	assert.ErrorIs(t, err, pipeline.ErrBadConfig)
}
