package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Matrix is a dense numeric table with named columns.
type Matrix struct {
	Columns []string
	Rows    [][]float64
}

// ReadMatrix reads a CSV of numeric columns with a header row. Every data
// cell must parse as a float; a non-numeric cell is an error naming the row
// and column.
func ReadMatrix(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	m := &Matrix{Columns: make([]string, len(header))}
	for i, h := range header {
		m.Columns[i] = strings.TrimSpace(h)
	}
	line := 1
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		if len(rec) != len(m.Columns) {
			return nil, fmt.Errorf("row %d: %d columns, want %d", line, len(rec), len(m.Columns))
		}
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: not numeric: %q", line, m.Columns[j], cell)
			}
			row[j] = v
		}
		m.Rows = append(m.Rows, row)
	}
	if len(m.Rows) == 0 {
		return nil, errors.New("csv has no data rows")
	}
	return m, nil
}

// Select returns the sub-matrix of the named columns, in the given order.
// An empty selection returns the matrix unchanged.
func (m *Matrix) Select(names []string) (*Matrix, error) {
	if len(names) == 0 {
		return m, nil
	}
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = -1
		for j, c := range m.Columns {
			if strings.EqualFold(c, strings.TrimSpace(n)) {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, fmt.Errorf("column %q not found", n)
		}
	}
	out := &Matrix{Columns: append([]string(nil), names...), Rows: make([][]float64, len(m.Rows))}
	for r, row := range m.Rows {
		sel := make([]float64, len(idx))
		for i, j := range idx {
			sel[i] = row[j]
		}
		out.Rows[r] = sel
	}
	return out, nil
}
