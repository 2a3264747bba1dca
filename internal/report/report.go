// Package report computes the end-of-run dataset statistics and assembles the
// JSON quality report from the diagnostics accumulated by the phases. The
// document layout is the external contract consumed by downstream reviewers;
// field names must stay stable.
package report

import (
	"math"
	"sort"
	"strconv"
	"time"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// Version identifies the pipeline in report metadata.
const Version = "1.0.0"

// Metadata describes the run that produced the report.
type Metadata struct {
	GeneratedAt     string `json:"generated_at"`
	RunID           string `json:"run_id"`
	PipelineVersion string `json:"pipeline_version"`
	InputFile       string `json:"input_file"`
	OutputFile      string `json:"output_file"`
	DurationMillis  int64  `json:"duration_ms"`
	PIIMasked       bool   `json:"pii_masked"`
}

// Shape is a rows-by-columns table size.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Summary captures the before/after transformation totals.
type Summary struct {
	OriginalShape       Shape   `json:"original_shape"`
	FinalShape          Shape   `json:"final_shape"`
	RowsRemoved         int     `json:"rows_removed"`
	DataCompletenessPct float64 `json:"data_completeness_pct"`
	TotalFixesApplied   int     `json:"total_fixes_applied"`
}

// Issues groups the accumulated findings by severity.
type Issues struct {
	Critical    []diag.Issue `json:"critical"`
	Errors      []diag.Issue `json:"errors"`
	Warnings    []diag.Issue `json:"warnings"`
	TotalIssues int          `json:"total_issues"`
}

// AmountStats is the summary profile of one amount column.
type AmountStats struct {
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Statistics profiles the final table.
type Statistics struct {
	NullCountsByColumn       map[string]int            `json:"null_counts_by_column"`
	CategoricalDistributions map[string]map[string]int `json:"categorical_distributions"`
	AmountStatistics         map[string]AmountStats    `json:"amount_statistics"`
}

// Report is the full quality report document.
type Report struct {
	ReportMetadata        Metadata       `json:"report_metadata"`
	TransformationSummary Summary        `json:"transformation_summary"`
	DataQualityMetrics    map[string]any `json:"data_quality_metrics"`
	IssuesFound           Issues         `json:"issues_found"`
	FixesApplied          []string       `json:"fixes_applied"`
	DataStatistics        Statistics     `json:"data_statistics"`
}

// Build assembles the report for the finished table. It also backfills the
// end-of-run counters (rows removed, completeness, total nulls) onto log so
// the flat metrics map is complete.
func Build(t *table.Table, log *diag.Log, meta Metadata, originalRows, originalCols int) *Report {
	nullsByColumn := countNulls(t)
	totalNulls := 0
	for _, n := range nullsByColumn {
		totalNulls += n
	}

	completeness := 0.0
	if cells := t.Len() * t.NumColumns(); cells > 0 {
		completeness = round2(float64(cells-totalNulls) / float64(cells) * 100)
	}

	log.Set(diag.MetricTotalNullsFound, totalNulls)
	log.Set(diag.MetricRowsRemoved, originalRows-t.Len())
	log.Set(diag.MetricFinalRows, t.Len())

	metrics := make(map[string]any, len(log.Metrics)+1)
	for k, v := range log.Metrics {
		metrics[k] = v
	}
	metrics["data_completeness_pct"] = completeness

	meta.GeneratedAt = time.Now().Format(time.RFC3339)
	meta.PipelineVersion = Version
	meta.PIIMasked = true

	fixes := log.Fixes
	if fixes == nil {
		fixes = []string{}
	}

	return &Report{
		ReportMetadata: meta,
		TransformationSummary: Summary{
			OriginalShape:       Shape{Rows: originalRows, Columns: originalCols},
			FinalShape:          Shape{Rows: t.Len(), Columns: t.NumColumns()},
			RowsRemoved:         originalRows - t.Len(),
			DataCompletenessPct: completeness,
			TotalFixesApplied:   len(log.Fixes),
		},
		DataQualityMetrics: metrics,
		IssuesFound: Issues{
			Critical:    orEmpty(log.CriticalIssues),
			Errors:      orEmpty(log.ErrorIssues),
			Warnings:    orEmpty(log.WarningIssues),
			TotalIssues: log.TotalIssues(),
		},
		FixesApplied: fixes,
		DataStatistics: Statistics{
			NullCountsByColumn:       nullsByColumn,
			CategoricalDistributions: distributions(t),
			AmountStatistics:         amountStats(t),
		},
	}
}

func orEmpty(in []diag.Issue) []diag.Issue {
	if in == nil {
		return []diag.Issue{}
	}
	return in
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

func countNulls(t *table.Table) map[string]int {
	counts := make(map[string]int, t.NumColumns())
	for _, col := range table.Columns() {
		counts[col] = 0
	}
	for _, col := range t.ExtraColumns {
		counts[col] = 0
	}
	for _, c := range t.Claims {
		if c.ClaimID == "" {
			counts[table.ColClaimID]++
		}
		if c.PatientID == "" {
			counts[table.ColPatientID]++
		}
		if c.PolicyID == "" {
			counts[table.ColPolicyID]++
		}
		if c.ClaimType == nil {
			counts[table.ColClaimType]++
		}
		if c.NetworkStatus == nil {
			counts[table.ColNetworkStatus]++
		}
		if c.DateOfService == nil {
			counts[table.ColDateOfService]++
		}
		if c.ClaimAmount == nil {
			counts[table.ColClaimAmount]++
		}
		if c.ApprovedAmount == nil {
			counts[table.ColApprovedAmount]++
		}
		if c.ClaimStatus == nil {
			counts[table.ColClaimStatus]++
		}
		if c.ErrorType == nil {
			counts[table.ColErrorType]++
		}
		if c.DenialReason == nil {
			counts[table.ColDenialReason]++
		}
		for j, v := range c.Extra {
			if v == "" && j < len(t.ExtraColumns) {
				counts[t.ExtraColumns[j]]++
			}
		}
	}
	return counts
}

// distributions tallies the value counts of the reported categorical columns.
func distributions(t *table.Table) map[string]map[string]int {
	cols := []struct {
		key string
		get func(table.Claim) *string
	}{
		{"claim_type", func(c table.Claim) *string { return c.ClaimType }},
		{"network_status", func(c table.Claim) *string { return c.NetworkStatus }},
		{"claim_status", func(c table.Claim) *string { return c.ClaimStatus }},
	}
	out := make(map[string]map[string]int, len(cols))
	for _, col := range cols {
		dist := map[string]int{}
		for _, c := range t.Claims {
			if v := col.get(c); v != nil {
				dist[*v]++
			}
		}
		out[col.key] = dist
	}
	return out
}

func amountStats(t *table.Table) map[string]AmountStats {
	out := make(map[string]AmountStats, 2)
	for key, get := range map[string]func(table.Claim) *float64{
		"claim_amount":    func(c table.Claim) *float64 { return c.ClaimAmount },
		"approved_amount": func(c table.Claim) *float64 { return c.ApprovedAmount },
	} {
		var vals []float64
		for _, c := range t.Claims {
			if v := get(c); v != nil {
				vals = append(vals, *v)
			}
		}
		out[key] = summarize(vals)
	}
	return out
}

func summarize(vals []float64) AmountStats {
	if len(vals) == 0 {
		return AmountStats{}
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return AmountStats{
		Count:  len(sorted),
		Total:  round2(sum),
		Mean:   round2(sum / float64(len(sorted))),
		Median: round2(median),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// FormatPct renders a completeness percentage for log lines.
func FormatPct(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) + "%" }
