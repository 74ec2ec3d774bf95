package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/rsm-bpintar/choicemc/internal/conjoint"
	"github.com/rsm-bpintar/choicemc/internal/dataset"
)

var (
	simRespondents  int
	simTasks        int
	simAlts         int
	simSeed         uint64
	simBrands       []string
	simPrices       []float64
	simBrandWeights map[string]string
	simAdsWeight    float64
	simPriceWeight  float64
	simOutput       string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate a synthetic choice panel with known part-worths",
	Long: `Simulate generates respondents×tasks choice tasks. Each task draws
distinct profiles from the design universe, adds Gumbel(0,1) noise to the
true utilities, and records the highest-utility alternative as chosen.
The panel is written in long format: one row per alternative per task.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scfg, seed, err := simulationConfig(cmd)
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(seed))
		panel, err := conjoint.Simulate(scfg, rng)
		if err != nil {
			return err
		}
		if err := dataset.WritePanel(simOutput, panel); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d tasks (%d rows) to %s\n", len(panel.Tasks), len(panel.Tasks)*scfg.Alternatives, simOutput)
		return nil
	},
}

// simulationConfig assembles a conjoint.Config from config-file defaults and
// flag overrides, shared by simulate and fit.
func simulationConfig(cmd *cobra.Command) (conjoint.Config, uint64, error) {
	c, err := activeConfig()
	if err != nil {
		return conjoint.Config{}, 0, err
	}
	scfg := conjoint.DefaultConfig()
	scfg.Respondents = c.Respondents
	scfg.TasksPerResp = c.Tasks
	scfg.Alternatives = c.Alternatives
	if len(c.Brands) > 0 {
		scfg.Design.Brands = c.Brands
	}
	if len(c.Prices) > 0 {
		scfg.Design.Prices = c.Prices
	}
	seed := c.Seed

	f := cmd.Flags()
	if f.Changed("respondents") {
		scfg.Respondents = simRespondents
	}
	if f.Changed("tasks") {
		scfg.TasksPerResp = simTasks
	}
	if f.Changed("alts") {
		scfg.Alternatives = simAlts
	}
	if f.Changed("brands") {
		scfg.Design.Brands = simBrands
	}
	if f.Changed("prices") {
		scfg.Design.Prices = simPrices
	}
	if f.Changed("seed") {
		seed = simSeed
	}
	if f.Changed("brand-weights") {
		weights := make(map[string]float64, len(simBrandWeights))
		for brand, raw := range simBrandWeights {
			w, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return conjoint.Config{}, 0, fmt.Errorf("invalid --brand-weights value for %s: %q", brand, raw)
			}
			weights[brand] = w
		}
		scfg.Truth.Brand = weights
	}
	if f.Changed("ads-weight") {
		scfg.Truth.Ads = simAdsWeight
	}
	if f.Changed("price-weight") {
		scfg.Truth.Price = simPriceWeight
	}
	return scfg, seed, nil
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	registerSimFlags(simulateCmd)
	simulateCmd.Flags().StringVarP(&simOutput, "output", "o", "panel.csv", "path to write the panel CSV")
}

// registerSimFlags adds the simulation flags to a command; fit reuses them
// for inline simulation.
func registerSimFlags(c *cobra.Command) {
	c.Flags().IntVar(&simRespondents, "respondents", 100, "number of respondents")
	c.Flags().IntVar(&simTasks, "tasks", 10, "choice tasks per respondent")
	c.Flags().IntVar(&simAlts, "alts", 3, "alternatives per task")
	c.Flags().Uint64Var(&simSeed, "seed", 123, "random seed")
	c.Flags().StringSliceVar(&simBrands, "brands", nil, "brand levels, last is the estimation baseline")
	c.Flags().Float64SliceVar(&simPrices, "prices", nil, "price grid")
	c.Flags().StringToStringVar(&simBrandWeights, "brand-weights", nil, "true brand part-worths, e.g. Netflix=1.0,Prime=0.5,Hulu=0")
	c.Flags().Float64Var(&simAdsWeight, "ads-weight", -0.8, "true ad-tier part-worth")
	c.Flags().Float64Var(&simPriceWeight, "price-weight", -0.1, "true per-dollar price slope")
}
