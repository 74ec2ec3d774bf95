// Package dataset reads and writes the tabular file surfaces of the study:
// long-format choice panels, posterior chains, and plain numeric matrices.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rsm-bpintar/choicemc/internal/conjoint"
)

// panelHeader is the long-format layout: one row per alternative per task,
// with a binary chosen flag.
var panelHeader = []string{"respondent", "task", "alt", "brand", "ads", "price", "chosen"}

// WritePanel writes a panel in long format, one row per alternative.
func WritePanel(path string, p *conjoint.Panel) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create panel file: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(panelHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, task := range p.Tasks {
		for j, pr := range task.Profiles {
			chosen := "0"
			if j == task.Chosen {
				chosen = "1"
			}
			ads := "0"
			if pr.HasAds {
				ads = "1"
			}
			rec := []string{
				strconv.Itoa(task.Respondent),
				strconv.Itoa(task.Index),
				strconv.Itoa(j),
				pr.Brand,
				ads,
				strconv.FormatFloat(pr.Price, 'g', -1, 64),
				chosen,
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}
	w.Flush()
	return w.Error()
}

// ReadPanel reads a long-format panel. Tasks are grouped by consecutive
// (respondent, task) pairs; each group must carry at least two alternatives
// and exactly one chosen flag. The design is reconstructed from the observed
// levels, brands in first-appearance order.
func ReadPanel(path string) (*conjoint.Panel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open panel file: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < len(panelHeader) {
		return nil, fmt.Errorf("panel header has %d columns, want %d", len(header), len(panelHeader))
	}

	var (
		design  conjoint.Design
		brands  = map[string]bool{}
		ads     = map[bool]bool{}
		prices  = map[float64]bool{}
		tasks   []conjoint.Task
		current *conjoint.Task
		curKey  [2]int
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current.Profiles) < 2 {
			return fmt.Errorf("task (%d,%d): fewer than 2 alternatives", current.Respondent, current.Index)
		}
		if current.Chosen < 0 {
			return fmt.Errorf("task (%d,%d): no chosen alternative", current.Respondent, current.Index)
		}
		tasks = append(tasks, *current)
		current = nil
		return nil
	}
	line := 1
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		resp, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: respondent: %w", line, err)
		}
		taskIdx, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: task: %w", line, err)
		}
		hasAds, err := parseFlag(rec[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: ads: %w", line, err)
		}
		price, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", line, err)
		}
		chosen, err := parseFlag(rec[6])
		if err != nil {
			return nil, fmt.Errorf("row %d: chosen: %w", line, err)
		}

		key := [2]int{resp, taskIdx}
		if current == nil || key != curKey {
			if err := flush(); err != nil {
				return nil, err
			}
			current = &conjoint.Task{Respondent: resp, Index: taskIdx, Chosen: -1}
			curKey = key
		}
		if chosen {
			if current.Chosen >= 0 {
				return nil, fmt.Errorf("task (%d,%d): more than one chosen alternative", resp, taskIdx)
			}
			current.Chosen = len(current.Profiles)
		}
		profile := conjoint.Profile{Brand: rec[3], HasAds: hasAds, Price: price}
		current.Profiles = append(current.Profiles, profile)

		if !brands[profile.Brand] {
			brands[profile.Brand] = true
			design.Brands = append(design.Brands, profile.Brand)
		}
		if !ads[hasAds] {
			ads[hasAds] = true
			design.AdStates = append(design.AdStates, hasAds)
		}
		if !prices[price] {
			prices[price] = true
			design.Prices = append(design.Prices, price)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, errors.New("panel file has no tasks")
	}
	return &conjoint.Panel{Design: design, Tasks: tasks}, nil
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	}
	return false, fmt.Errorf("want 0/1, got %q", s)
}
