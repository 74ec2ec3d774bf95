package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCmd executes the root command with args, resetting sticky flag state
// from previous invocations first.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	resetFlags(simulateCmd, fitCmd, describeCmd, kmeansCmd)
	cfg = nil
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func resetFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok && f.DefValue == "[]" {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
}

func useTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

func TestCLI_SimulateThenFit(t *testing.T) {
	home := useTempHome(t)

	panelPath := filepath.Join(home, "panel.csv")
	runCmd(t, "simulate",
		"--respondents", "20", "--tasks", "5", "--seed", "123",
		"--output", panelPath)

	b, err := os.ReadFile(panelPath)
	if err != nil {
		t.Fatalf("read panel: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if got, want := len(lines), 1+20*5*3; got != want {
		t.Fatalf("panel lines = %d, want %d", got, want)
	}

	reportPath := filepath.Join(home, "report.md")
	chainPath := filepath.Join(home, "chain.csv")
	runCmd(t, "fit",
		"--input", panelPath,
		"--iterations", "400", "--burn-in", "100",
		"--output", reportPath,
		"--chain", chainPath)

	md, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(md), "[POSTERIOR SUMMARY]") {
		t.Fatalf("report missing posterior summary section:\n%s", md)
	}
	if !strings.Contains(string(md), "brand:") {
		t.Fatalf("report missing brand coefficients:\n%s", md)
	}
	cb, err := os.ReadFile(chainPath)
	if err != nil {
		t.Fatalf("read chain: %v", err)
	}
	if got, want := len(strings.Split(strings.TrimSpace(string(cb)), "\n")), 401; got != want {
		t.Fatalf("chain lines = %d, want %d", got, want)
	}
}

func TestCLI_FitInlineSimulation(t *testing.T) {
	home := useTempHome(t)

	reportPath := filepath.Join(home, "inline.md")
	runCmd(t, "fit",
		"--respondents", "10", "--tasks", "4", "--seed", "7",
		"--iterations", "300", "--burn-in", "50",
		"--output", reportPath)

	md, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(md), "simulated (seed 7)") {
		t.Fatalf("report missing simulation source line:\n%s", md)
	}
}

func TestCLI_DescribeAndKMeans(t *testing.T) {
	home := useTempHome(t)

	dataPath := filepath.Join(home, "data.csv")
	csv := "x,y\n"
	for i := 0; i < 10; i++ {
		csv += "1,1\n10,10\n"
	}
	if err := os.WriteFile(dataPath, []byte(csv), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}

	descPath := filepath.Join(home, "describe.md")
	runCmd(t, "describe", dataPath, "--output", descPath)
	md, err := os.ReadFile(descPath)
	if err != nil {
		t.Fatalf("read describe output: %v", err)
	}
	if !strings.Contains(string(md), "[DATASET SUMMARY]") {
		t.Fatalf("describe output missing summary section:\n%s", md)
	}

	kmPath := filepath.Join(home, "clusters.md")
	runCmd(t, "kmeans", dataPath, "--clusters", "2", "--seed", "3", "--output", kmPath)
	md, err = os.ReadFile(kmPath)
	if err != nil {
		t.Fatalf("read kmeans output: %v", err)
	}
	if !strings.Contains(string(md), "[CLUSTERING]") {
		t.Fatalf("kmeans output missing clustering section:\n%s", md)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := useTempHome(t)

	runCmd(t, "config", "set", "iterations", "5000")
	runCmd(t, "config", "show")

	b, err := os.ReadFile(filepath.Join(home, ".choicemc", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "iterations: 5000") {
		t.Fatalf("config file missing saved value:\n%s", b)
	}
}
