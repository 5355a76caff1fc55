package registry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"traind/internal/common/fsutil"
	"traind/pkg/types"
)

// LoadDir scans a directory for *.csv files and builds a dataset registry
// from filenames. ID is the full filename (including extension); Path is the
// absolute file path.
func LoadDir(dir string) ([]types.Dataset, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var datasets []types.Dataset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		p := filepath.Join(abs, name)
		datasets = append(datasets, types.Dataset{ID: name, Name: name, Path: p})
	}
	return datasets, nil
}

// LoadCSV reads a numeric CSV file into feature rows and targets. The last
// column is the target; all other columns are features. A single leading
// header row is skipped when its first field does not parse as a number.
func LoadCSV(path string) (features [][]float64, targets []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty csv: %s", path)
	}
	start := 0
	if _, convErr := strconv.ParseFloat(strings.TrimSpace(records[0][0]), 64); convErr != nil {
		start = 1
	}
	for i := start; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("row %d: need at least one feature and a target", i+1)
		}
		row := make([]float64, 0, len(rec)-1)
		for j, field := range rec {
			v, convErr := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if convErr != nil {
				return nil, nil, fmt.Errorf("row %d col %d: %w", i+1, j+1, convErr)
			}
			if j == len(rec)-1 {
				targets = append(targets, v)
			} else {
				row = append(row, v)
			}
		}
		features = append(features, row)
	}
	if len(features) == 0 {
		return nil, nil, fmt.Errorf("no data rows in %s", path)
	}
	return features, targets, nil
}
