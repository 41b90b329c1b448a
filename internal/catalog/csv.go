package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the exact column layout of the tabular exchange format.
var csvHeader = []string{"model", "cpu_score", "gpu_score", "ram_gb", "storage_gb", "price"}

// ReadCSV parses candidates from the tabular exchange format. The header row
// must match csvHeader exactly. Parsed rows are not semantically validated;
// call ValidateCandidates before handing them to the pipeline.
func ReadCSV(r io.Reader) ([]Candidate, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("csv: expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, fmt.Errorf("csv: column %d: expected %q, got %q", i, name, header[i])
		}
	}

	var rows []Candidate
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line+1, err)
		}
		line++

		nums := make([]float64, len(rec)-1)
		for i, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("csv: line %d: column %s: invalid number %q", line, csvHeader[i+1], field)
			}
			nums[i] = v
		}
		rows = append(rows, Candidate{
			Model:     rec[0],
			CPUScore:  nums[0],
			GPUScore:  nums[1],
			RAMGB:     nums[2],
			StorageGB: nums[3],
			Price:     nums[4],
		})
	}
	return rows, nil
}

// WriteCSV writes candidates in the tabular exchange format.
func WriteCSV(w io.Writer, rows []Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Model,
			strconv.FormatFloat(r.CPUScore, 'g', -1, 64),
			strconv.FormatFloat(r.GPUScore, 'g', -1, 64),
			strconv.FormatFloat(r.RAMGB, 'g', -1, 64),
			strconv.FormatFloat(r.StorageGB, 'g', -1, 64),
			strconv.FormatFloat(r.Price, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: write row %s: %w", r.Model, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
