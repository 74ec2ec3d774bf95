// Package kmeans implements Lloyd's K-Means clustering over dense numeric
// rows.
package kmeans

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Config controls one clustering run.
type Config struct {
	Clusters int
	// MaxIter caps the assign/update rounds. 0 means the default of 100.
	MaxIter int
}

// Result holds the fitted clustering.
type Result struct {
	Centroids [][]float64
	// Labels assigns each input row to a centroid index.
	Labels []int
	// WithinSS is the total within-cluster sum of squared distances.
	WithinSS float64
	// Iterations is the number of rounds run before assignments stabilized
	// (or MaxIter was hit).
	Iterations int
}

// ConfigError reports invalid clustering parameters.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Fit clusters rows into cfg.Clusters groups with Lloyd's algorithm.
// Centroids are seeded k-means++ style, so a fixed rng seed yields an
// identical clustering.
func Fit(rows [][]float64, cfg Config, rng *rand.Rand) (*Result, error) {
	if cfg.Clusters <= 0 {
		return nil, &ConfigError{Field: "clusters", Reason: "must be positive"}
	}
	if len(rows) < cfg.Clusters {
		return nil, &ConfigError{Field: "clusters", Reason: "more clusters than rows"}
	}
	dim := len(rows[0])
	for i, r := range rows {
		if len(r) != dim {
			return nil, &ConfigError{Field: "rows", Reason: fmt.Sprintf("row %d has %d columns, want %d", i, len(r), dim)}
		}
	}
	maxIter := cfg.MaxIter
	if maxIter <= 0 {
		maxIter = 100
	}

	centroids := seedCentroids(rows, cfg.Clusters, rng)

	labels := make([]int, len(rows))
	res := &Result{Centroids: centroids, Labels: labels}
	sums := make([][]float64, cfg.Clusters)
	counts := make([]int, cfg.Clusters)
	for k := range sums {
		sums[k] = make([]float64, dim)
	}
	for iter := 1; iter <= maxIter; iter++ {
		res.Iterations = iter
		changed := false
		for i, row := range rows {
			best, _ := nearest(row, centroids)
			if labels[i] != best || iter == 1 {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		for k := range sums {
			for d := range sums[k] {
				sums[k][d] = 0
			}
			counts[k] = 0
		}
		for i, row := range rows {
			floats.Add(sums[labels[i]], row)
			counts[labels[i]]++
		}
		for k := range centroids {
			if counts[k] == 0 {
				// Empty cluster keeps its previous centroid.
				continue
			}
			copy(centroids[k], sums[k])
			floats.Scale(1/float64(counts[k]), centroids[k])
		}
	}

	// A maxIter exit leaves labels one update behind the centroids, so the
	// final assignment and WithinSS come from one last pass against the
	// centroids as returned.
	for i, row := range rows {
		best, dist := nearest(row, centroids)
		labels[i] = best
		res.WithinSS += dist
	}
	return res, nil
}

// nearest returns the index of the closest centroid and the squared distance
// to it.
func nearest(row []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, sqDist(row, centroids[0])
	for k := 1; k < len(centroids); k++ {
		if d := sqDist(row, centroids[k]); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, bestDist
}

// seedCentroids picks initial centroids k-means++ style: the first uniformly
// at random, each next with probability proportional to its squared distance
// from the nearest centroid picked so far. Deterministic given rng.
func seedCentroids(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), rows[rng.Intn(len(rows))]...))
	d2 := make([]float64, len(rows))
	for len(centroids) < k {
		var total float64
		for i, row := range rows {
			d2[i] = sqDist(row, centroids[0])
			for _, c := range centroids[1:] {
				if d := sqDist(row, c); d < d2[i] {
					d2[i] = d
				}
			}
			total += d2[i]
		}
		pick := len(rows) - 1
		if total > 0 {
			target := rng.Float64() * total
			var cum float64
			for i, d := range d2 {
				cum += d
				if cum >= target {
					pick = i
					break
				}
			}
		} else {
			// All rows coincide with a centroid already.
			pick = rng.Intn(len(rows))
		}
		centroids = append(centroids, append([]float64(nil), rows[pick]...))
	}
	return centroids
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}
