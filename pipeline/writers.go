package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jessica-ewald/JQ-coexpression-network/softpower"
	"github.com/jessica-ewald/JQ-coexpression-network/treecut"
)

// WritePowerReportCSV writes the candidate power report, one row per
// scanned power, for the human power-selection step.
func WritePowerReportCSV(w io.Writer, r *softpower.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"power", "fit_index", "slope", "mean_k", "median_k", "max_k"}); err != nil {
		return fmt.Errorf("pipeline: write power report: %w", err)
	}
	for _, f := range r.Fits {
		rec := []string{
			strconv.FormatFloat(f.Power, 'g', -1, 64),
			strconv.FormatFloat(f.FitIndex, 'f', 4, 64),
			strconv.FormatFloat(f.Slope, 'f', 4, 64),
			strconv.FormatFloat(f.MeanK, 'f', 4, 64),
			strconv.FormatFloat(f.MedianK, 'f', 4, 64),
			strconv.FormatFloat(f.MaxK, 'f', 4, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("pipeline: write power report: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteModulesCSV writes one row per gene with the module label under
// each swept deepSplit level. Label 0 is the unassigned background.
func WriteModulesCSV(w io.Writer, genes []string, levels []int, assignments []*treecut.Assignment) error {
	if len(levels) != len(assignments) {
		return fmt.Errorf("pipeline: %d levels, %d assignments: %w", len(levels), len(assignments), ErrBadConfig)
	}
	for _, a := range assignments {
		if a.NumGenes() != len(genes) {
			return fmt.Errorf("pipeline: assignment covers %d genes, want %d: %w", a.NumGenes(), len(genes), ErrBadConfig)
		}
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, 1+len(levels))
	header = append(header, "gene_id")
	for _, l := range levels {
		header = append(header, "module_ds"+strconv.Itoa(l))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("pipeline: write modules: %w", err)
	}

	rec := make([]string, len(header))
	for i, id := range genes {
		rec[0] = id
		for c, a := range assignments {
			rec[1+c] = strconv.Itoa(a.Label(i))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("pipeline: write modules: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
