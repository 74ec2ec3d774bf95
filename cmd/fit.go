package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/rsm-bpintar/choicemc/internal/conjoint"
	"github.com/rsm-bpintar/choicemc/internal/dataset"
	"github.com/rsm-bpintar/choicemc/internal/mnl"
	"github.com/rsm-bpintar/choicemc/internal/report"
	"github.com/rsm-bpintar/choicemc/internal/utils"
)

var (
	fitInput         string
	fitBaseline      string
	fitIterations    int
	fitBurnIn        int
	fitPriorVar      float64
	fitPriorVarPrice float64
	fitStepSD        float64
	fitStepSDPrice   float64
	fitOutput        string
	fitChainPath     string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Estimate MNL part-worths by Metropolis-Hastings posterior sampling",
	Long: `Fit draws posterior samples of the multinomial-logit coefficient vector
for a choice panel: independent Normal priors per coefficient, symmetric
random-walk proposals, and a fixed iteration count with a burn-in prefix
excluded from the summary. With --input it reads a long-format panel CSV;
without it, it simulates a panel inline using the simulation flags.

No convergence diagnostic is computed; export the chain with --chain and
inspect the trace externally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}

		var (
			panel  *conjoint.Panel
			source string
			seed   = c.Seed
		)
		if cmd.Flags().Changed("seed") {
			seed = simSeed
		}
		if fitInput != "" {
			panel, err = dataset.ReadPanel(fitInput)
			if err != nil {
				return err
			}
			if fitBaseline != "" {
				d, err := panel.Design.WithBaseline(fitBaseline)
				if err != nil {
					return err
				}
				panel.Design = d
			}
			source = fitInput
		} else {
			scfg, scfgSeed, err := simulationConfig(cmd)
			if err != nil {
				return err
			}
			seed = scfgSeed
			panel, err = conjoint.Simulate(scfg, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			source = fmt.Sprintf("simulated (seed %d)", seed)
		}

		model, err := mnl.NewModel(panel)
		if err != nil {
			return err
		}

		mcfg := mnl.DefaultConfig()
		mcfg.Iterations = c.Iterations
		mcfg.BurnIn = c.BurnIn
		f := cmd.Flags()
		if f.Changed("iterations") {
			mcfg.Iterations = fitIterations
		}
		if f.Changed("burn-in") {
			mcfg.BurnIn = fitBurnIn
		}
		coefs := make(map[string]mnl.CoefConfig, model.Dim())
		for _, name := range model.Names {
			cc := mnl.CoefConfig{PriorVar: c.PriorVar, StepSD: c.StepSD}
			if name == mnl.CoefPrice {
				cc = mnl.CoefConfig{PriorVar: c.PriorVarPrice, StepSD: c.StepSDPrice}
			}
			if f.Changed("prior-var") && name != mnl.CoefPrice {
				cc.PriorVar = fitPriorVar
			}
			if f.Changed("prior-var-price") && name == mnl.CoefPrice {
				cc.PriorVar = fitPriorVarPrice
			}
			if f.Changed("step-sd") && name != mnl.CoefPrice {
				cc.StepSD = fitStepSD
			}
			if f.Changed("step-sd-price") && name == mnl.CoefPrice {
				cc.StepSD = fitStepSDPrice
			}
			coefs[name] = cc
		}
		mcfg.Coefs = coefs

		// The sampler owns its own stream so panels read from disk and
		// inline-simulated panels sample identically for a given seed.
		chain, err := mnl.Sample(model, mcfg, rand.New(rand.NewSource(seed+1)))
		if err != nil {
			return err
		}
		sums, err := mnl.Summarize(chain)
		if err != nil {
			return err
		}

		rep := &report.Fit{
			RunID:        uuid.NewString(),
			Source:       source,
			Tasks:        model.Tasks(),
			Alternatives: len(panel.Tasks[0].Profiles),
			Iterations:   mcfg.Iterations,
			BurnIn:       mcfg.BurnIn,
			AcceptRate:   chain.AcceptanceRate(),
			Coefs:        sums,
		}
		if r := chain.AcceptanceRate(); r <= 0.05 || r >= 0.80 {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("acceptance rate %.3f outside (0.05, 0.80); check proposal step sizes", r))
		}

		if fitChainPath != "" {
			if err := dataset.WriteChain(fitChainPath, chain); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "✓ Wrote chain to %s\n", fitChainPath)
		}
		md := rep.Markdown()
		if fitOutput != "" {
			if err := utils.EnsureDir(filepath.Dir(fitOutput)); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(fitOutput, []byte(md)); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote posterior summary to %s\n", fitOutput)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
	registerSimFlags(fitCmd)
	fitCmd.Flags().StringVarP(&fitInput, "input", "i", "", "long-format panel CSV (omit to simulate inline)")
	fitCmd.Flags().StringVar(&fitBaseline, "baseline", "", "brand treated as the zero-coded baseline when reading --input")
	fitCmd.Flags().IntVar(&fitIterations, "iterations", 11000, "total chain length")
	fitCmd.Flags().IntVar(&fitBurnIn, "burn-in", 1000, "iterations discarded before summarizing")
	fitCmd.Flags().Float64Var(&fitPriorVar, "prior-var", 25, "prior variance for categorical coefficients")
	fitCmd.Flags().Float64Var(&fitPriorVarPrice, "prior-var-price", 1, "prior variance for the price coefficient")
	fitCmd.Flags().Float64Var(&fitStepSD, "step-sd", 0.05, "proposal step standard deviation for categorical coefficients")
	fitCmd.Flags().Float64Var(&fitStepSDPrice, "step-sd-price", 0.005, "proposal step standard deviation for the price coefficient")
	fitCmd.Flags().StringVarP(&fitOutput, "output", "o", "", "optional path to write the summary (Markdown)")
	fitCmd.Flags().StringVar(&fitChainPath, "chain", "", "optional path to export the full chain as CSV")
}
