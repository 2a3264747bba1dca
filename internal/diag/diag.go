// Package diag implements the diagnostics accumulator shared by all pipeline
// phases: three ordered issue logs (critical, errors, warnings), an ordered
// list of applied fixes, and a flat counter map keyed by fixed metric names.
//
// A Log is created once per pipeline run and passed explicitly into each
// phase; it is never a package-level singleton, so runs stay independent and
// testable in parallel. There is exactly one writer (the run goroutine), so
// no locking is needed.
package diag

import "fmt"

// Severity classifies an issue. Unknown severities fall back to warnings.
type Severity string

const (
	Critical Severity = "critical"
	Errors   Severity = "errors"
	Warnings Severity = "warnings"
)

// Issue is a single data-quality finding tied to a field (or the synthetic
// field "ROWS" for table-level findings).
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Counter names recorded by the phases. The full set is materialized at zero
// when a Log is created so the report always carries every key.
const (
	MetricDuplicateClaimIDs     = "duplicate_claim_ids"
	MetricDuplicateRows         = "duplicate_rows"
	MetricTotalNullsFound       = "total_nulls_found"
	MetricCriticalNulls         = "critical_nulls"
	MetricInvalidDates          = "invalid_dates"
	MetricInvalidDatesRemoved   = "invalid_dates_removed"
	MetricFutureDates           = "future_dates"
	MetricVeryOldDates          = "very_old_dates"
	MetricNonNumericAmounts     = "non_numeric_amounts"
	MetricNegativeAmountsFixed  = "negative_amounts_fixed"
	MetricCategoricalTyposFixed = "categorical_typos_fixed"
	MetricApprovedWithErrorFix  = "approved_with_error_fixed"
	MetricApprovedAmountFilled  = "approved_amount_filled"
	MetricApprovedExceedsClaim  = "approved_exceeds_claim_fixed"
	MetricDeniedWithoutReason   = "denied_without_reason_fixed"
	MetricDeniedAmountZeroed    = "denied_amount_set_to_zero"
	MetricPendingAmountFilled   = "pending_amount_filled"
	MetricStatusInferred        = "status_inferred_from_amounts"
	MetricMaskedPatientIDs      = "masked_patient_ids"
	MetricMaskedPolicyIDs       = "masked_policy_ids"
	MetricNullFixes             = "null_fixes"
	MetricTotalFixes            = "total_fixes"
	MetricRowsRemoved           = "rows_removed"
	MetricFinalRows             = "final_rows"
)

func allMetrics() []string {
	return []string{
		MetricDuplicateClaimIDs, MetricDuplicateRows, MetricTotalNullsFound,
		MetricCriticalNulls, MetricInvalidDates, MetricInvalidDatesRemoved,
		MetricFutureDates, MetricVeryOldDates, MetricNonNumericAmounts,
		MetricNegativeAmountsFixed, MetricCategoricalTyposFixed,
		MetricApprovedWithErrorFix, MetricApprovedAmountFilled,
		MetricApprovedExceedsClaim, MetricDeniedWithoutReason,
		MetricDeniedAmountZeroed, MetricPendingAmountFilled,
		MetricStatusInferred, MetricMaskedPatientIDs, MetricMaskedPolicyIDs,
		MetricNullFixes, MetricTotalFixes, MetricRowsRemoved, MetricFinalRows,
	}
}

// Log accumulates issues, fixes, and counters across a single run.
type Log struct {
	CriticalIssues []Issue
	ErrorIssues    []Issue
	WarningIssues  []Issue

	Fixes   []string
	Metrics map[string]int

	// RemovedClaimIDs records claim IDs dropped by the removal phases, for
	// traceability in post-run investigation.
	RemovedClaimIDs []string
}

// NewLog returns an empty Log with every known counter present at zero.
func NewLog() *Log {
	m := make(map[string]int, 24)
	for _, k := range allMetrics() {
		m[k] = 0
	}
	return &Log{Metrics: m}
}

// Issue appends a finding to the list matching sev.
func (l *Log) Issue(sev Severity, field, format string, args ...any) {
	is := Issue{Field: field, Message: fmt.Sprintf(format, args...)}
	switch sev {
	case Critical:
		l.CriticalIssues = append(l.CriticalIssues, is)
	case Errors:
		l.ErrorIssues = append(l.ErrorIssues, is)
	default:
		l.WarningIssues = append(l.WarningIssues, is)
	}
}

// Fix appends a human-readable fix entry and bumps the total-fixes counter.
func (l *Log) Fix(format string, args ...any) {
	l.Fixes = append(l.Fixes, fmt.Sprintf(format, args...))
	l.Metrics[MetricTotalFixes]++
}

// Add increments a counter by n.
func (l *Log) Add(metric string, n int) {
	l.Metrics[metric] += n
}

// Set overwrites a counter (used for end-of-run totals like final_rows).
func (l *Log) Set(metric string, n int) {
	l.Metrics[metric] = n
}

// Removed records a claim ID dropped by a removal phase.
func (l *Log) Removed(claimID string) {
	l.RemovedClaimIDs = append(l.RemovedClaimIDs, claimID)
}

// TotalIssues is the combined length of all three issue lists.
func (l *Log) TotalIssues() int {
	return len(l.CriticalIssues) + len(l.ErrorIssues) + len(l.WarningIssues)
}
