package phase

import (
	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// Fill resolves the remaining non-critical nulls with safe defaults:
// Claim_Type and Error_Type become "Unknown", Denial_Reason on non-denied
// rows becomes "N/A", and a still-missing Claim_Status falls back to
// "Pending". The status fallback is a last-resort default, not an inference.
type Fill struct{}

func (Fill) Name() string { return "fill-nulls" }

func (Fill) Apply(t *table.Table, log *diag.Log) *table.Table {
	filled := 0

	for i := range t.Claims {
		c := &t.Claims[i]
		if c.ClaimType == nil {
			c.ClaimType = table.Str("Unknown")
			filled++
		}
		if c.ErrorType == nil {
			c.ErrorType = table.Str("Unknown")
			filled++
		}
		if c.DenialReason == nil && !statusContains(c, "denied") {
			c.DenialReason = table.Str("N/A")
			filled++
		}
		if c.ClaimStatus == nil {
			c.ClaimStatus = table.Str("Pending")
			filled++
		}
	}

	if filled > 0 {
		log.Add(diag.MetricNullFixes, filled)
		log.Fix("Filled %d null values", filled)
	}
	return t
}
