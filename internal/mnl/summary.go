package mnl

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CoefSummary is the posterior summary of one coefficient over the
// post-burn-in draws: mean, standard deviation, and the 95% credible
// interval (2.5th and 97.5th percentiles).
type CoefSummary struct {
	Name  string
	Mean  float64
	Std   float64
	Lower float64
	Upper float64
}

// ExcludesZero reports whether the credible interval lies entirely on one
// side of zero.
func (s CoefSummary) ExcludesZero() bool {
	return s.Lower > 0 || s.Upper < 0
}

// Summarize computes per-coefficient posterior summaries over the chain's
// post-burn-in suffix. No convergence diagnostic is computed; inspecting the
// trace is left to the caller.
func Summarize(c *Chain) ([]CoefSummary, error) {
	draws := c.PostBurnIn()
	if len(draws) < 2 {
		return nil, &ConfigError{Field: "burn_in", Reason: "fewer than 2 post-burn-in draws"}
	}
	out := make([]CoefSummary, len(c.Names))
	col := make([]float64, len(draws))
	for d, name := range c.Names {
		for i, draw := range draws {
			col[i] = draw[d]
		}
		mean, std := stat.MeanStdDev(col, nil)
		sort.Float64s(col)
		out[d] = CoefSummary{
			Name:  name,
			Mean:  mean,
			Std:   std,
			Lower: stat.Quantile(0.025, stat.Empirical, col, nil),
			Upper: stat.Quantile(0.975, stat.Empirical, col, nil),
		}
	}
	return out, nil
}
