package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/rsm-bpintar/choicemc/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "choicemc",
	Short: "choicemc: conjoint simulation and Bayesian choice-model estimation",
	Long:  `choicemc simulates discrete-choice conjoint panels under a known utility model and estimates multinomial-logit part-worths from them by Metropolis-Hastings posterior sampling. It also ships the study's exploratory tools: dataset summaries and K-Means clustering.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.choicemc/config.yaml)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the loaded configuration, loading it on demand if the
// OnInitialize hook failed or was skipped.
func activeConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
