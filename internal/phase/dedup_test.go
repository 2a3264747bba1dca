package phase

import (
	"reflect"
	"testing"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

/*
TestDeDupApply verifies the two-pass duplicate removal:

  - Pass 1 keeps the first occurrence of each Claim_ID, even when the later
    row differs in other columns.
  - Pass 2 removes exact full-row duplicates among the survivors.
  - Removed claim IDs are recorded for traceability.
*/
func TestDeDupApply(t *testing.T) {
	tbl := &table.Table{Claims: []table.Claim{
		{ClaimID: "CLM001", PatientID: "A", ClaimAmountRaw: "100"},
		{ClaimID: "CLM002", PatientID: "B", ClaimAmountRaw: "200"},
		// Duplicate claim ID with different content: removed by pass 1.
		{ClaimID: "CLM001", PatientID: "Z", ClaimAmountRaw: "999"},
		// Exact duplicate of CLM002 except for the ID: survives both passes.
		{ClaimID: "CLM003", PatientID: "B", ClaimAmountRaw: "200"},
		{ClaimID: "CLM002", PatientID: "B", ClaimAmountRaw: "200"},
	}}
	log := diag.NewLog()

	out := DeDup{}.Apply(tbl, log)

	var ids []string
	for _, c := range out.Claims {
		ids = append(ids, c.ClaimID)
	}
	if want := []string{"CLM001", "CLM002", "CLM003"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("surviving IDs = %v, want %v", ids, want)
	}
	if got := log.Metrics[diag.MetricDuplicateClaimIDs]; got != 2 {
		t.Errorf("duplicate_claim_ids = %d, want 2", got)
	}
	if got := log.Metrics[diag.MetricDuplicateRows]; got != 0 {
		t.Errorf("duplicate_rows = %d, want 0", got)
	}
	if want := []string{"CLM001", "CLM002"}; !reflect.DeepEqual(log.RemovedClaimIDs, want) {
		t.Errorf("removed IDs = %v, want %v", log.RemovedClaimIDs, want)
	}
	if len(log.CriticalIssues) != 1 {
		t.Errorf("critical issues = %v, want one duplicate-ID finding", log.CriticalIssues)
	}
}

func TestDeDupFullRowPass(t *testing.T) {
	row := table.Claim{ClaimID: "", PatientID: "A", PolicyID: "P", ClaimAmountRaw: "50"}
	tbl := &table.Table{Claims: []table.Claim{row, row, row}}
	log := diag.NewLog()

	out := DeDup{}.Apply(tbl, log)

	// Blank claim IDs never trip pass 1; pass 2 collapses the exact copies.
	if out.Len() != 1 {
		t.Fatalf("rows = %d, want 1", out.Len())
	}
	if got := log.Metrics[diag.MetricDuplicateRows]; got != 2 {
		t.Errorf("duplicate_rows = %d, want 2", got)
	}
	if len(log.WarningIssues) != 1 {
		t.Errorf("warnings = %v, want one duplicate-row finding", log.WarningIssues)
	}
}

// Rows that differ only in their raw amount strings are distinct; the typed
// amount fields are still empty at dedup time.
func TestDeDupRawAmountsDistinguishRows(t *testing.T) {
	tbl := &table.Table{Claims: []table.Claim{
		{ClaimID: "", PatientID: "A", ClaimAmountRaw: "100"},
		{ClaimID: "", PatientID: "A", ClaimAmountRaw: "101"},
	}}
	out := DeDup{}.Apply(tbl, diag.NewLog())
	if out.Len() != 2 {
		t.Fatalf("rows = %d, want 2", out.Len())
	}
}
