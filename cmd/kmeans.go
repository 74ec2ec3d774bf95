package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/rsm-bpintar/choicemc/internal/dataset"
	"github.com/rsm-bpintar/choicemc/internal/kmeans"
	"github.com/rsm-bpintar/choicemc/internal/report"
	"github.com/rsm-bpintar/choicemc/internal/utils"
)

var (
	kmClusters int
	kmMaxIter  int
	kmSeed     uint64
	kmColumns  []string
	kmOutput   string
)

var kmeansCmd = &cobra.Command{
	Use:   "kmeans <file>",
	Short: "Cluster the numeric columns of a CSV with K-Means",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := dataset.ReadMatrix(args[0])
		if err != nil {
			return err
		}
		m, err = m.Select(kmColumns)
		if err != nil {
			return err
		}
		res, err := kmeans.Fit(m.Rows, kmeans.Config{Clusters: kmClusters, MaxIter: kmMaxIter}, rand.New(rand.NewSource(kmSeed)))
		if err != nil {
			return err
		}
		rep := &report.Clusters{Name: filepath.Base(args[0]), Columns: m.Columns, Result: res}
		md := rep.Markdown()
		if kmOutput != "" {
			if err := utils.SafeWriteFile(kmOutput, []byte(md)); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote clustering to %s\n", kmOutput)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kmeansCmd)
	kmeansCmd.Flags().IntVarP(&kmClusters, "clusters", "k", 3, "number of clusters")
	kmeansCmd.Flags().IntVar(&kmMaxIter, "max-iter", 100, "maximum assign/update rounds")
	kmeansCmd.Flags().Uint64Var(&kmSeed, "seed", 123, "random seed for centroid initialization")
	kmeansCmd.Flags().StringSliceVar(&kmColumns, "columns", nil, "columns to cluster on (default all)")
	kmeansCmd.Flags().StringVarP(&kmOutput, "output", "o", "", "optional path to write the clustering (Markdown)")
}
