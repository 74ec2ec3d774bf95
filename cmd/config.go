package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/rsm-bpintar/choicemc/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set choicemc configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		fmt.Printf("respondents: %d\n", c.Respondents)
		fmt.Printf("tasks: %d\n", c.Tasks)
		fmt.Printf("alternatives: %d\n", c.Alternatives)
		fmt.Printf("brands: %v\n", c.Brands)
		fmt.Printf("prices: %v\n", c.Prices)
		fmt.Printf("seed: %d\n", c.Seed)
		fmt.Printf("iterations: %d\n", c.Iterations)
		fmt.Printf("burn_in: %d\n", c.BurnIn)
		fmt.Printf("prior_var: %.3f\n", c.PriorVar)
		fmt.Printf("prior_var_price: %.3f\n", c.PriorVarPrice)
		fmt.Printf("step_sd: %.4f\n", c.StepSD)
		fmt.Printf("step_sd_price: %.4f\n", c.StepSDPrice)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := activeConfig()
		if err != nil {
			return err
		}
		switch key {
		case "respondents", "tasks", "alternatives", "iterations", "burn_in":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			switch key {
			case "respondents":
				c.Respondents = i
			case "tasks":
				c.Tasks = i
			case "alternatives":
				c.Alternatives = i
			case "iterations":
				c.Iterations = i
			case "burn_in":
				c.BurnIn = i
			}
		case "seed":
			u, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid uint for seed: %v", val)
			}
			c.Seed = u
		case "prior_var", "prior_var_price", "step_sd", "step_sd_price":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid positive float for %s: %v", key, val)
			}
			switch key {
			case "prior_var":
				c.PriorVar = f
			case "prior_var_price":
				c.PriorVarPrice = f
			case "step_sd":
				c.StepSD = f
			case "step_sd_price":
				c.StepSDPrice = f
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
