// Package table defines the in-memory claims table that flows through the
// cleaning pipeline. Each phase consumes a *Table and returns a *Table; the
// row type carries the eleven canonical claim columns with explicit nullable
// fields so that phase preconditions are visible in the type system instead
// of being buried in dynamically typed cell values.
package table

import (
	"strconv"
	"strings"
)

// Canonical column names, in file order. Input files must carry exactly these
// headers (case-sensitive); any additional columns are preserved untouched.
const (
	ColClaimID        = "Claim_ID"
	ColPatientID      = "Patient_ID"
	ColPolicyID       = "Policy_ID"
	ColClaimType      = "Claim_Type"
	ColNetworkStatus  = "Network_Status"
	ColDateOfService  = "Date_of_Service"
	ColClaimAmount    = "Claim_Amount"
	ColApprovedAmount = "Approved_Amount"
	ColClaimStatus    = "Claim_Status"
	ColErrorType      = "Error_Type"
	ColDenialReason   = "Denial_Reason"
)

// Columns returns the canonical column list in output order.
func Columns() []string {
	return []string{
		ColClaimID, ColPatientID, ColPolicyID, ColClaimType, ColNetworkStatus,
		ColDateOfService, ColClaimAmount, ColApprovedAmount, ColClaimStatus,
		ColErrorType, ColDenialReason,
	}
}

// Claim is a single row. String identifiers use "" as null; categorical and
// free-text fields use nil pointers; amounts use nil for null. DateOfService
// holds the raw source string until the date phase rewrites it to YYYY-MM-DD.
type Claim struct {
	ClaimID   string
	PatientID string
	PolicyID  string

	ClaimType     *string
	NetworkStatus *string
	ClaimStatus   *string
	ErrorType     *string
	DenialReason  *string

	DateOfService *string

	ClaimAmount    *float64
	ApprovedAmount *float64

	// ClaimAmountRaw / ApprovedAmountRaw hold the source strings until the
	// numeric phase coerces them into the typed fields above and clears them.
	ClaimAmountRaw    string
	ApprovedAmountRaw string

	// Extra holds values for columns beyond the canonical set, aligned with
	// Table.ExtraColumns. They pass through the pipeline unmodified.
	Extra []string
}

// Table is an ordered collection of claims sharing one schema. Order is the
// insertion order of the source file; the row-count phase relies on it.
type Table struct {
	ExtraColumns []string
	Claims       []Claim
}

// NumColumns is the total column count including pass-through extras.
func (t *Table) NumColumns() int { return len(Columns()) + len(t.ExtraColumns) }

// Len is the current row count.
func (t *Table) Len() int { return len(t.Claims) }

// Str returns a pointer to a copy of s, for building rows in tests and phases.
func Str(s string) *string { return &s }

// Num returns a pointer to a copy of f.
func Num(f float64) *float64 { return &f }

// Deref returns the value of p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// IsBlank reports whether p is nil or contains only whitespace.
func IsBlank(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}

// AmountString renders a nullable amount with two decimals, "" when null.
func AmountString(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

// Cells returns the claim's values as output strings, canonical columns first
// and pass-through extras after, matching Columns() + t.ExtraColumns. Null
// cells render as empty strings.
func (t *Table) Cells(c Claim) []string {
	out := make([]string, 0, t.NumColumns())
	out = append(out,
		c.ClaimID,
		c.PatientID,
		c.PolicyID,
		Deref(c.ClaimType),
		Deref(c.NetworkStatus),
		Deref(c.DateOfService),
		AmountString(c.ClaimAmount),
		AmountString(c.ApprovedAmount),
		Deref(c.ClaimStatus),
		Deref(c.ErrorType),
		Deref(c.DenialReason),
	)
	out = append(out, c.Extra...)
	for len(out) < t.NumColumns() {
		out = append(out, "")
	}
	return out
}
