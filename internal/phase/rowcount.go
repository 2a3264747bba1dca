package phase

import (
	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// RowCount trims the table to the configured target size, keeping the first
// Target rows in insertion order. A shortfall is logged as a warning, never
// padded: downstream consumers expect a fixed-size golden sample but rows are
// not fabricated to reach it.
type RowCount struct {
	Target int
}

func (RowCount) Name() string { return "row-count" }

func (p RowCount) Apply(t *table.Table, log *diag.Log) *table.Table {
	if p.Target <= 0 {
		log.Set(diag.MetricFinalRows, t.Len())
		return t
	}
	switch n := t.Len(); {
	case n > p.Target:
		removed := n - p.Target
		t.Claims = t.Claims[:p.Target]
		log.Fix("Trimmed to %d rows (removed %d)", p.Target, removed)
	case n < p.Target:
		log.Issue(diag.Warnings, "ROWS", "Only %d valid rows available", n)
	}
	log.Set(diag.MetricFinalRows, t.Len())
	return t
}
