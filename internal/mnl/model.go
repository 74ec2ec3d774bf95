// Package mnl estimates multinomial-logit utility coefficients from a choice
// panel by random-walk Metropolis-Hastings sampling of the posterior.
package mnl

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/rsm-bpintar/choicemc/internal/conjoint"
)

// Coefficient names for the non-brand attributes. Brand coefficients are
// named "brand:<level>", one per non-baseline brand.
const (
	CoefAds   = "ads"
	CoefPrice = "price"
)

// CoefNames returns the coefficient vector layout for a design: one dummy per
// non-baseline brand (the last brand is the baseline), then the ad indicator,
// then price.
func CoefNames(d conjoint.Design) []string {
	names := make([]string, 0, len(d.Brands)+1)
	for _, b := range d.Brands[:len(d.Brands)-1] {
		names = append(names, "brand:"+b)
	}
	return append(names, CoefAds, CoefPrice)
}

// Model is the likelihood side of the estimation problem: the encoded
// covariate rows of every alternative in every task, plus the observed
// choices. Built once from a panel and read-only afterwards.
type Model struct {
	Names  []string
	rows   [][][]float64 // task × alternative × coefficient
	chosen []int
}

// NewModel encodes a panel into covariate rows. Every task must carry at
// least two alternatives and a chosen index inside its alternative range.
func NewModel(p *conjoint.Panel) (*Model, error) {
	if err := p.Design.Validate(); err != nil {
		return nil, err
	}
	if len(p.Tasks) == 0 {
		return nil, &ConfigError{Field: "panel", Reason: "no tasks"}
	}
	names := CoefNames(p.Design)
	brandIdx := make(map[string]int, len(p.Design.Brands)-1)
	for i, b := range p.Design.Brands[:len(p.Design.Brands)-1] {
		brandIdx[b] = i
	}
	m := &Model{
		Names:  names,
		rows:   make([][][]float64, 0, len(p.Tasks)),
		chosen: make([]int, 0, len(p.Tasks)),
	}
	for ti, task := range p.Tasks {
		if len(task.Profiles) < 2 {
			return nil, &ConfigError{Field: "panel", Reason: fmt.Sprintf("task %d has fewer than 2 alternatives", ti)}
		}
		if task.Chosen < 0 || task.Chosen >= len(task.Profiles) {
			return nil, &ConfigError{Field: "panel", Reason: fmt.Sprintf("task %d chosen index %d out of range", ti, task.Chosen)}
		}
		alts := make([][]float64, len(task.Profiles))
		for j, pr := range task.Profiles {
			row := make([]float64, len(names))
			if idx, ok := brandIdx[pr.Brand]; ok {
				row[idx] = 1
			}
			if pr.HasAds {
				row[len(names)-2] = 1
			}
			row[len(names)-1] = pr.Price
			alts[j] = row
		}
		m.rows = append(m.rows, alts)
		m.chosen = append(m.chosen, task.Chosen)
	}
	return m, nil
}

// Tasks reports the number of encoded tasks.
func (m *Model) Tasks() int { return len(m.rows) }

// Dim reports the coefficient vector length.
func (m *Model) Dim() int { return len(m.Names) }

// Probabilities returns the choice probabilities of every alternative of one
// task under beta. The probabilities sum to 1 up to floating-point error.
func (m *Model) Probabilities(task int, beta []float64) []float64 {
	alts := m.rows[task]
	u := make([]float64, len(alts))
	for j, row := range alts {
		u[j] = floats.Dot(row, beta)
	}
	lse := floats.LogSumExp(u)
	p := make([]float64, len(u))
	for j := range u {
		p[j] = math.Exp(u[j] - lse)
	}
	return p
}

// LogLikelihood is the panel log-likelihood Σ_i log P_i(chosen_i).
// LogSumExp subtracts the row max before exponentiating, so extreme betas
// cannot overflow the softmax.
func (m *Model) LogLikelihood(beta []float64) float64 {
	var ll float64
	u := make([]float64, 0, 8)
	for ti, alts := range m.rows {
		u = u[:0]
		for _, row := range alts {
			u = append(u, floats.Dot(row, beta))
		}
		ll += u[m.chosen[ti]] - floats.LogSumExp(u)
	}
	return ll
}
