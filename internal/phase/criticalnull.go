package phase

import (
	"strings"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// CriticalNull drops rows missing any identity field. Fields are checked
// independently, in order (Claim_ID, Patient_ID, Policy_ID), so a row missing
// Claim_ID is logged once under Claim_ID and never re-flagged under the later
// fields.
type CriticalNull struct{}

func (CriticalNull) Name() string { return "critical-nulls" }

func (CriticalNull) Apply(t *table.Table, log *diag.Log) *table.Table {
	checks := []struct {
		field string
		get   func(table.Claim) string
	}{
		{table.ColClaimID, func(c table.Claim) string { return c.ClaimID }},
		{table.ColPatientID, func(c table.Claim) string { return c.PatientID }},
		{table.ColPolicyID, func(c table.Claim) string { return c.PolicyID }},
	}

	for _, chk := range checks {
		kept := t.Claims[:0]
		removed := 0
		for _, c := range t.Claims {
			if strings.TrimSpace(chk.get(c)) == "" {
				removed++
				log.Removed(c.ClaimID)
				continue
			}
			kept = append(kept, c)
		}
		t.Claims = kept
		if removed > 0 {
			log.Add(diag.MetricCriticalNulls, removed)
			log.Issue(diag.Critical, chk.field, "%d critical nulls - rows removed", removed)
			log.Fix("Removed %d rows with null %s", removed, chk.field)
		}
	}
	return t
}
