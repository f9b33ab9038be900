package expr

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadCSV parses the cleaned expression table produced by the upstream
// filtering stages: a header "gene_id,<sample>,..." followed by one row
// per gene. Parse failures are wrapped with the offending gene and
// sample so data-quality problems surface by name.
func ReadCSV(r io.Reader) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // shape is validated below with gene context

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("expr: read header: %w", err)
	}
	if len(header) < 1+MinSamples {
		return nil, fmt.Errorf("expr: header has %d sample columns: %w", len(header)-1, ErrTooFewSamples)
	}
	samples := append([]string(nil), header[1:]...)

	var (
		genes []string
		rows  [][]float64
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("expr: read row %d: %w", len(genes)+1, err)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("expr: gene %q has %d fields, want %d: %w", rec[0], len(rec)-1, len(samples), ErrShape)
		}
		row := make([]float64, len(samples))
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("expr: gene %q sample %q: parse %q: %w", rec[0], samples[j], field, err)
			}
			row[j] = v
		}
		genes = append(genes, rec[0])
		rows = append(rows, row)
	}

	return New(genes, samples, rows)
}
