package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rsm-bpintar/choicemc/internal/mnl"
)

// WriteChain exports every chain draw (burn-in included) as CSV, one row per
// iteration, for external trace plots and histograms. The iteration column
// is zero-based; rows before the chain's burn-in offset belong to the
// discarded prefix.
func WriteChain(path string, c *mnl.Chain) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chain file: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	header := append([]string{"iteration"}, c.Names...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(header))
	for i, draw := range c.Draws {
		rec[0] = strconv.Itoa(i)
		for d, v := range draw {
			rec[d+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
