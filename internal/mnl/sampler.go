package mnl

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// CoefConfig binds a prior variance and a proposal step scale (the standard
// deviation of the random-walk perturbation) to one named coefficient.
// Binding by name rather than by position keeps the pairing correct when the
// attribute set changes.
type CoefConfig struct {
	PriorVar float64
	StepSD   float64
}

// DefaultCoefConfigs returns the study defaults for a coefficient layout:
// a diffuse Normal(0,25) prior with step scale 0.05 for every coefficient
// except price, which gets a tighter Normal(0,1) prior and step scale
// 0.005. Price is the best-identified coefficient, so a large step there
// would collapse the acceptance rate.
func DefaultCoefConfigs(names []string) map[string]CoefConfig {
	out := make(map[string]CoefConfig, len(names))
	for _, n := range names {
		if n == CoefPrice {
			out[n] = CoefConfig{PriorVar: 1, StepSD: 0.005}
		} else {
			out[n] = CoefConfig{PriorVar: 25, StepSD: 0.05}
		}
	}
	return out
}

// Config controls one Metropolis-Hastings run.
type Config struct {
	// Iterations is the total chain length, burn-in included.
	Iterations int
	// BurnIn marks the prefix excluded from posterior summaries. It is
	// metadata only; the chain itself is never truncated.
	BurnIn int
	// Start is the optional initial state. Nil means the zero vector.
	Start []float64
	// Coefs maps every model coefficient name to its prior variance and
	// proposal step scale. Nil means DefaultCoefConfigs.
	Coefs map[string]CoefConfig
}

// DefaultConfig returns the study's run length: 11000 iterations with the
// first 1000 discarded as burn-in.
func DefaultConfig() Config {
	return Config{Iterations: 11000, BurnIn: 1000}
}

// Chain is the full posterior sample sequence: exactly one coefficient
// vector per iteration, accepted or not. Append-only during sampling.
type Chain struct {
	Names    []string
	Draws    [][]float64
	BurnIn   int
	Accepted int
}

// AcceptanceRate is the fraction of iterations whose proposal was accepted.
func (c *Chain) AcceptanceRate() float64 {
	if len(c.Draws) == 0 {
		return 0
	}
	return float64(c.Accepted) / float64(len(c.Draws))
}

// PostBurnIn returns the usable suffix of the chain. The returned slice
// aliases the chain's storage.
func (c *Chain) PostBurnIn() [][]float64 {
	return c.Draws[c.BurnIn:]
}

func (cfg Config) resolve(m *Model) ([]float64, []float64, []float64, error) {
	if cfg.Iterations <= 0 {
		return nil, nil, nil, &ConfigError{Field: "iterations", Reason: "must be positive"}
	}
	if cfg.BurnIn < 0 || cfg.BurnIn >= cfg.Iterations {
		return nil, nil, nil, &ConfigError{Field: "burn_in", Reason: "must be in [0, iterations)"}
	}
	if cfg.Start != nil && len(cfg.Start) != m.Dim() {
		return nil, nil, nil, &ConfigError{Field: "start", Reason: "length does not match coefficient count"}
	}
	coefs := cfg.Coefs
	if coefs == nil {
		coefs = DefaultCoefConfigs(m.Names)
	}
	priorVar := make([]float64, m.Dim())
	stepSD := make([]float64, m.Dim())
	for d, name := range m.Names {
		cc, ok := coefs[name]
		if !ok {
			return nil, nil, nil, &ConfigError{Field: "coefs", Reason: "no configuration for coefficient " + name}
		}
		if cc.PriorVar <= 0 {
			return nil, nil, nil, &ConfigError{Field: "coefs", Reason: "non-positive prior variance for " + name}
		}
		if cc.StepSD <= 0 {
			return nil, nil, nil, &ConfigError{Field: "coefs", Reason: "non-positive step scale for " + name}
		}
		priorVar[d] = cc.PriorVar
		stepSD[d] = cc.StepSD
	}
	start := make([]float64, m.Dim())
	copy(start, cfg.Start)
	return start, priorVar, stepSD, nil
}

// Sample draws cfg.Iterations posterior samples of the model's coefficient
// vector by symmetric random-walk Metropolis-Hastings.
//
// Each iteration perturbs the current state with independent Normal noise of
// standard deviation stepSD_d and accepts the proposal with probability
// min(1, exp(Δ log-posterior)); the proposal is symmetric, so no Hastings
// correction applies. A rejected proposal re-appends the current state, so
// the chain always holds exactly one entry per iteration.
//
// The loop is strictly sequential: iteration i+1 depends on the outcome of
// iteration i. Sample runs to completion or fails with an InstabilityError
// when the log-posterior goes non-finite.
func Sample(m *Model, cfg Config, rng *rand.Rand) (*Chain, error) {
	cur, priorVar, stepSD, err := cfg.resolve(m)
	if err != nil {
		return nil, err
	}
	dim := m.Dim()
	priors := make([]distuv.Normal, dim)
	steps := make([]distuv.Normal, dim)
	for d := 0; d < dim; d++ {
		priors[d] = distuv.Normal{Mu: 0, Sigma: math.Sqrt(priorVar[d])}
		steps[d] = distuv.Normal{Mu: 0, Sigma: stepSD[d], Src: rng}
	}
	logPosterior := func(beta []float64) float64 {
		lp := m.LogLikelihood(beta)
		for d := range beta {
			lp += priors[d].LogProb(beta[d])
		}
		return lp
	}

	curLP := logPosterior(cur)
	if math.IsNaN(curLP) || math.IsInf(curLP, 0) {
		return nil, &InstabilityError{Iteration: 0, State: cur}
	}

	chain := &Chain{
		Names:  m.Names,
		Draws:  make([][]float64, 0, cfg.Iterations),
		BurnIn: cfg.BurnIn,
	}
	prop := make([]float64, dim)
	for i := 0; i < cfg.Iterations; i++ {
		for d := 0; d < dim; d++ {
			prop[d] = cur[d] + steps[d].Rand()
		}
		lp := logPosterior(prop)
		if math.IsNaN(lp) || math.IsInf(lp, 0) {
			state := make([]float64, dim)
			copy(state, prop)
			return nil, &InstabilityError{Iteration: i, State: state}
		}
		if accept(lp-curLP, rng) {
			copy(cur, prop)
			curLP = lp
			chain.Accepted++
		}
		draw := make([]float64, dim)
		copy(draw, cur)
		chain.Draws = append(chain.Draws, draw)
	}
	return chain, nil
}

// accept applies the Metropolis rule for a symmetric proposal: uphill moves
// are accepted outright without consuming randomness, downhill moves draw one
// uniform against exp(delta).
func accept(delta float64, rng *rand.Rand) bool {
	if delta >= 0 {
		return true
	}
	return rng.Float64() < math.Exp(delta)
}
