package kmeans

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/exp/rand"
)

// blobs returns three well-separated clusters of 20 points each.
func blobs() [][]float64 {
	centers := [][]float64{{0, 0}, {10, 10}, {-10, 10}}
	rng := rand.New(rand.NewSource(99))
	rows := make([][]float64, 0, 60)
	for _, c := range centers {
		for i := 0; i < 20; i++ {
			rows = append(rows, []float64{
				c[0] + rng.NormFloat64()*0.5,
				c[1] + rng.NormFloat64()*0.5,
			})
		}
	}
	return rows
}

func TestFitSeparatesBlobs(t *testing.T) {
	rows := blobs()
	res, err := Fit(rows, Config{Clusters: 3}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if len(res.Labels) != len(rows) {
		t.Fatalf("labels = %d, want %d", len(res.Labels), len(rows))
	}
	// All points of one blob share a label, and the three blobs get three
	// distinct labels.
	labels := map[int]bool{}
	for b := 0; b < 3; b++ {
		first := res.Labels[b*20]
		for i := 1; i < 20; i++ {
			if res.Labels[b*20+i] != first {
				t.Fatalf("blob %d split across clusters", b)
			}
		}
		labels[first] = true
	}
	if len(labels) != 3 {
		t.Fatalf("blobs mapped to %d labels, want 3", len(labels))
	}
	// Tight blobs: total within-cluster SS stays near the noise floor.
	if res.WithinSS > 60 {
		t.Fatalf("within-cluster SS = %v, suspiciously large", res.WithinSS)
	}
}

func TestFitDeterminism(t *testing.T) {
	rows := blobs()
	a, err := Fit(rows, Config{Clusters: 3}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	b, err := Fit(rows, Config{Clusters: 3}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical seeds produced different clusterings")
	}
}

func TestFitKEqualsRows(t *testing.T) {
	rows := [][]float64{{1, 1}, {2, 2}, {3, 3}}
	res, err := Fit(rows, Config{Clusters: 3}, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if res.WithinSS != 0 {
		t.Fatalf("within-cluster SS = %v, want 0 with one point per cluster", res.WithinSS)
	}
}

// TestFitMaxIterConsistency cuts the run off after one round and checks the
// result is still self-consistent: every label points at the nearest returned
// centroid and WithinSS is the squared distance to exactly those centroids.
func TestFitMaxIterConsistency(t *testing.T) {
	rows := blobs()
	res, err := Fit(rows, Config{Clusters: 3, MaxIter: 1}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if res.Iterations != 1 {
		t.Fatalf("iterations = %d, want 1", res.Iterations)
	}
	var ss float64
	for i, row := range rows {
		best, dist := nearest(row, res.Centroids)
		if res.Labels[i] != best {
			t.Fatalf("row %d labeled %d, nearest centroid is %d", i, res.Labels[i], best)
		}
		ss += dist
	}
	if diff := ss - res.WithinSS; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("WithinSS = %v, recomputed %v", res.WithinSS, ss)
	}
}

func TestFitConfigErrors(t *testing.T) {
	rows := [][]float64{{1}, {2}}
	tests := []struct {
		name string
		rows [][]float64
		cfg  Config
	}{
		{"zero clusters", rows, Config{Clusters: 0}},
		{"more clusters than rows", rows, Config{Clusters: 3}},
		{"ragged rows", [][]float64{{1, 2}, {3}}, Config{Clusters: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.rows, tt.cfg, rand.New(rand.NewSource(1)))
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
		})
	}
}
