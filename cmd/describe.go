package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/rsm-bpintar/choicemc/internal/dataset"
	"github.com/rsm-bpintar/choicemc/internal/report"
	"github.com/rsm-bpintar/choicemc/internal/utils"
)

var (
	descColumns []string
	descOutput  string
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize the numeric columns of a CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := dataset.ReadMatrix(args[0])
		if err != nil {
			return err
		}
		m, err = m.Select(descColumns)
		if err != nil {
			return err
		}

		rep := &report.Describe{Name: filepath.Base(args[0]), Rows: len(m.Rows)}
		col := make([]float64, len(m.Rows))
		for j, name := range m.Columns {
			for i, row := range m.Rows {
				col[i] = row[j]
			}
			mean, std := stat.MeanStdDev(col, nil)
			sort.Float64s(col)
			rep.Cols = append(rep.Cols, report.Column{
				Name: name,
				N:    len(col),
				Mean: mean,
				Std:  std,
				Min:  col[0],
				Q25:  stat.Quantile(0.25, stat.Empirical, col, nil),
				Med:  stat.Quantile(0.5, stat.Empirical, col, nil),
				Q75:  stat.Quantile(0.75, stat.Empirical, col, nil),
				Max:  col[len(col)-1],
			})
		}

		md := rep.Markdown()
		if descOutput != "" {
			if err := utils.SafeWriteFile(descOutput, []byte(md)); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote summary to %s\n", descOutput)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringSliceVar(&descColumns, "columns", nil, "columns to summarize (default all)")
	describeCmd.Flags().StringVarP(&descOutput, "output", "o", "", "optional path to write the summary (Markdown)")
}
