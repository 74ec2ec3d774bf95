package dataset

import (
	"strings"
	"testing"
)

func TestReadMatrix(t *testing.T) {
	path := writeTemp(t, "a,b,c\n1,2,3\n4,5.5,6e-1\n")
	m, err := ReadMatrix(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(m.Columns) != 3 || m.Columns[1] != "b" {
		t.Fatalf("columns = %v", m.Columns)
	}
	if len(m.Rows) != 2 || m.Rows[1][2] != 0.6 {
		t.Fatalf("rows = %v", m.Rows)
	}
}

func TestReadMatrixErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"non-numeric cell", "a,b\n1,two\n", "not numeric"},
		{"no data rows", "a,b\n", "no data rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMatrix(writeTemp(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMatrixSelect(t *testing.T) {
	m := &Matrix{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]float64{{1, 2, 3}, {4, 5, 6}},
	}
	sel, err := m.Select([]string{"c", "a"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Rows[0][0] != 3 || sel.Rows[0][1] != 1 {
		t.Fatalf("rows = %v", sel.Rows)
	}
	if _, err := m.Select([]string{"missing"}); err == nil {
		t.Fatalf("expected error for unknown column")
	}
	// Empty selection keeps everything.
	same, err := m.Select(nil)
	if err != nil || len(same.Columns) != 3 {
		t.Fatalf("empty select: %v %v", same, err)
	}
}
