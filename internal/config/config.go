package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure. Every field has a CLI flag override; the
// file only supplies defaults.
type Global struct {
	// Simulation defaults
	Respondents  int       `mapstructure:"respondents" yaml:"respondents"`
	Tasks        int       `mapstructure:"tasks" yaml:"tasks"`
	Alternatives int       `mapstructure:"alternatives" yaml:"alternatives"`
	Brands       []string  `mapstructure:"brands" yaml:"brands"`
	Prices       []float64 `mapstructure:"prices" yaml:"prices"`
	Seed         uint64    `mapstructure:"seed" yaml:"seed"`

	// Sampler defaults
	Iterations    int     `mapstructure:"iterations" yaml:"iterations"`
	BurnIn        int     `mapstructure:"burn_in" yaml:"burn_in"`
	PriorVar      float64 `mapstructure:"prior_var" yaml:"prior_var"`
	PriorVarPrice float64 `mapstructure:"prior_var_price" yaml:"prior_var_price"`
	StepSD        float64 `mapstructure:"step_sd" yaml:"step_sd"`
	StepSDPrice   float64 `mapstructure:"step_sd_price" yaml:"step_sd_price"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.choicemc/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".choicemc")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CHOICEMC")
	v.AutomaticEnv()

	// Defaults match the recovery study.
	v.SetDefault("respondents", 100)
	v.SetDefault("tasks", 10)
	v.SetDefault("alternatives", 3)
	v.SetDefault("brands", []string{"Netflix", "Prime", "Hulu"})
	v.SetDefault("prices", []float64{4, 8, 12, 16, 20, 24, 28, 32})
	v.SetDefault("seed", 123)
	v.SetDefault("iterations", 11000)
	v.SetDefault("burn_in", 1000)
	v.SetDefault("prior_var", 25.0)
	v.SetDefault("prior_var_price", 1.0)
	v.SetDefault("step_sd", 0.05)
	v.SetDefault("step_sd_price", 0.005)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".choicemc")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
