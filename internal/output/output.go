// Package output writes the two run artifacts: the golden dataset CSV and the
// JSON quality report. A failed write of either artifact is fatal for the
// run; partially written outputs must never be mistaken for a completed one.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"claimsdq/internal/report"
	"claimsdq/internal/table"
)

// WriteGolden writes t as a delimited file at path, canonical columns first
// and pass-through extras after, creating parent directories as needed.
func WriteGolden(path string, t *table.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create golden dataset: %w", err)
	}

	w := csv.NewWriter(f)
	header := append(table.Columns(), t.ExtraColumns...)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range t.Claims {
		if err := w.Write(t.Cells(c)); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush golden dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close golden dataset: %w", err)
	}
	return nil
}

// WriteReport serializes the quality report as indented JSON at path.
func WriteReport(path string, r *report.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		f.Close()
		return fmt.Errorf("encode report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

// WriteArtifacts writes the golden dataset and the report. The two files are
// independent, so they are written concurrently; the first failure wins.
func WriteArtifacts(goldenPath, reportPath string, t *table.Table, r *report.Report) error {
	var g errgroup.Group
	g.Go(func() error { return WriteGolden(goldenPath, t) })
	g.Go(func() error { return WriteReport(reportPath, r) })
	return g.Wait()
}
