// Package report renders study results as compact markdown suitable for
// standalone docs or downstream prompts.
package report

import (
	"fmt"
	"strings"

	"github.com/rsm-bpintar/choicemc/internal/kmeans"
	"github.com/rsm-bpintar/choicemc/internal/mnl"
)

// Fit is a markdown-friendly summary of one posterior sampling run.
type Fit struct {
	RunID        string
	Source       string // panel file, or "simulated" with the seed
	Tasks        int
	Alternatives int
	Iterations   int
	BurnIn       int
	AcceptRate   float64
	Coefs        []mnl.CoefSummary
	Warnings     []string
}

// Markdown renders the posterior summary table. The credible interval is the
// 2.5th/97.5th percentile band of the post-burn-in draws.
func (f *Fit) Markdown() string {
	var b strings.Builder
	b.WriteString("[POSTERIOR SUMMARY]\n")
	if f.RunID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", f.RunID))
	}
	if f.Source != "" {
		b.WriteString(fmt.Sprintf("Panel: %s (%d tasks, %d alternatives each)\n", f.Source, f.Tasks, f.Alternatives))
	}
	b.WriteString(fmt.Sprintf("Iterations: %d (burn-in %d, %d kept)\n", f.Iterations, f.BurnIn, f.Iterations-f.BurnIn))
	b.WriteString(fmt.Sprintf("Acceptance rate: %.3f\n\n", f.AcceptRate))

	b.WriteString("| coefficient | mean | std | 2.5% | 97.5% | excl. 0 |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, c := range f.Coefs {
		excl := ""
		if c.ExcludesZero() {
			excl = "yes"
		}
		b.WriteString(fmt.Sprintf("| %s | %.4g | %.4g | %.4g | %.4g | %s |\n",
			c.Name, c.Mean, c.Std, c.Lower, c.Upper, excl))
	}
	if len(f.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range f.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Column is one column's summary statistics for the describe report.
type Column struct {
	Name string
	N    int
	Mean float64
	Std  float64
	Min  float64
	Q25  float64
	Med  float64
	Q75  float64
	Max  float64
}

// Describe is a markdown-friendly exploratory summary of a numeric table.
type Describe struct {
	Name string
	Rows int
	Cols []Column
}

// Markdown renders the exploratory statistics table.
func (d *Describe) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if d.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", d.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\nColumns: %d\n\n", d.Rows, len(d.Cols)))
	b.WriteString("| column | n | mean | std | min | 25% | median | 75% | max |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, c := range d.Cols {
		b.WriteString(fmt.Sprintf("| %s | %d | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
			c.Name, c.N, c.Mean, c.Std, c.Min, c.Q25, c.Med, c.Q75, c.Max))
	}
	return b.String()
}

// Clusters is a markdown-friendly summary of a K-Means run.
type Clusters struct {
	Name    string
	Columns []string
	Result  *kmeans.Result
}

// Markdown renders centroid coordinates and cluster sizes.
func (c *Clusters) Markdown() string {
	sizes := make([]int, len(c.Result.Centroids))
	for _, l := range c.Result.Labels {
		sizes[l]++
	}
	var b strings.Builder
	b.WriteString("[CLUSTERING]\n")
	if c.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", c.Name))
	}
	b.WriteString(fmt.Sprintf("Clusters: %d (converged after %d rounds)\n", len(c.Result.Centroids), c.Result.Iterations))
	b.WriteString(fmt.Sprintf("Within-cluster SS: %.6g\n\n", c.Result.WithinSS))

	b.WriteString("| cluster | size |")
	for _, col := range c.Columns {
		b.WriteString(" " + col + " |")
	}
	b.WriteString("\n| --- | --- |")
	b.WriteString(strings.Repeat(" --- |", len(c.Columns)))
	b.WriteString("\n")
	for k, cen := range c.Result.Centroids {
		b.WriteString(fmt.Sprintf("| %d | %d |", k, sizes[k]))
		for _, v := range cen {
			b.WriteString(fmt.Sprintf(" %.4g |", v))
		}
		b.WriteString("\n")
	}
	return b.String()
}
