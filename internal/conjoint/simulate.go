package conjoint

import (
	"math"

	"golang.org/x/exp/rand"
)

// Task is one respondent's one decision instance: exactly Alternatives
// profiles, their realized total utilities, and the index of the alternative
// with the highest total utility. Immutable after creation.
type Task struct {
	Respondent int
	Index      int
	Profiles   []Profile
	Utilities  []float64
	Chosen     int
}

// Panel is the ordered sequence of tasks across all respondents, in
// (respondent, task) order. It is the unit consumed by estimators.
type Panel struct {
	Design Design
	Tasks  []Task
}

// Config controls a simulation run.
type Config struct {
	Design       Design
	Truth        PartWorths
	Respondents  int
	TasksPerResp int
	Alternatives int
}

// DefaultConfig returns the study's default panel dimensions: 100
// respondents, 10 tasks each, 3 alternatives per task.
func DefaultConfig() Config {
	return Config{
		Design:       DefaultDesign(),
		Truth:        DefaultPartWorths(),
		Respondents:  100,
		TasksPerResp: 10,
		Alternatives: 3,
	}
}

func (c Config) validate() error {
	if err := c.Design.Validate(); err != nil {
		return err
	}
	if c.Respondents <= 0 {
		return &ConfigError{Field: "respondents", Reason: "must be positive"}
	}
	if c.TasksPerResp <= 0 {
		return &ConfigError{Field: "tasks", Reason: "must be positive"}
	}
	n := len(c.Design.Brands) * len(c.Design.AdStates) * len(c.Design.Prices)
	if c.Alternatives <= 0 || c.Alternatives > n {
		return &ConfigError{Field: "alternatives", Reason: "must be in [1, profile universe size]"}
	}
	return nil
}

// Gumbel draws one standard Gumbel(0,1) variate by inverse-CDF sampling,
// x = -ln(-ln(U)). Added to the deterministic utility it yields the
// closed-form multinomial-logit choice probability. Float64 can return
// exactly 0, where the transform diverges, so a zero draw is redrawn to keep
// every utility finite.
func Gumbel(rng *rand.Rand) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return -math.Log(-math.Log(u))
}

// Simulate generates a panel of Respondents×TasksPerResp choice tasks.
//
// Per task it samples Alternatives distinct profiles uniformly without
// replacement from the design's universe, adds i.i.d. Gumbel(0,1) noise to
// each deterministic utility, and records the argmax as the chosen index.
//
// Simulate is deterministic with respect to rng: the same seed and config
// always produce an identical panel. The rng is owned by the caller so that
// simulation and estimation can be driven by independent sources.
func Simulate(cfg Config, rng *rand.Rand) (*Panel, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	universe := cfg.Design.Universe()
	tasks := make([]Task, 0, cfg.Respondents*cfg.TasksPerResp)
	for r := 0; r < cfg.Respondents; r++ {
		for t := 0; t < cfg.TasksPerResp; t++ {
			perm := rng.Perm(len(universe))
			profiles := make([]Profile, cfg.Alternatives)
			utilities := make([]float64, cfg.Alternatives)
			chosen := 0
			for j := 0; j < cfg.Alternatives; j++ {
				profiles[j] = universe[perm[j]]
				utilities[j] = cfg.Truth.Utility(profiles[j]) + Gumbel(rng)
				if utilities[j] > utilities[chosen] {
					chosen = j
				}
			}
			tasks = append(tasks, Task{
				Respondent: r,
				Index:      t,
				Profiles:   profiles,
				Utilities:  utilities,
				Chosen:     chosen,
			})
		}
	}
	return &Panel{Design: cfg.Design, Tasks: tasks}, nil
}
