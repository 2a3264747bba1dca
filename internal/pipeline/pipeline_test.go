package pipeline

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"claimsdq/internal/config"
	"claimsdq/internal/diag"
)

const dirtyExtract = `Claim_ID,Patient_ID,Policy_ID,Claim_Type,Network_Status,Date_of_Service,Claim_Amount,Approved_Amount,Claim_Status,Error_Type,Denial_Reason
CLM001,PAT001,POL001,dental,in-network,15-03-2024,"$1,500.00",1200,approvd,None,
CLM001,PAT099,POL099,general,in-network,2024-01-01,100,50,approved,,
CLM002,PAT002,,general,in-network,2024-02-01,200,150,approved,,
CLM003,PAT003,POL003,genral,out-ntwk,2030-01-01,300,250,approved,,
CLM004,PAT004,POL004,general,in-network,2024-04-01,-300,,denied,Coding Error,
CLM005,PAT005,POL005,general,in-network,2024-05-10,250,,,,
`

func testConfig(t *testing.T, input string) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input = input
	cfg.Output = filepath.Join(dir, "golden_dataset.csv")
	cfg.Report = filepath.Join(dir, "data_quality_report.json")
	cfg.TargetRows = 3
	return cfg
}

func writeExtract(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claims.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

/*
TestRunEndToEnd drives the whole pipeline over a dirty extract:

  - duplicate claim ID removed, missing Policy_ID removed, future date removed
  - identifiers masked, currency parsed, negative flipped, typos fixed
  - statuses inferred and amounts reconciled by the rule engine
  - both artifacts written, counters consistent with the input
*/
func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t, writeExtract(t, dirtyExtract))

	res, err := Run(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OriginalRows != 6 {
		t.Errorf("original rows = %d, want 6", res.OriginalRows)
	}
	if res.Table.Len() != 3 {
		t.Fatalf("final rows = %d, want 3", res.Table.Len())
	}
	if res.RunID == "" {
		t.Error("run ID missing")
	}

	// Survivors in order, identifiers masked.
	wantIDs := []string{"CLM001", "CLM004", "CLM005"}
	for i, c := range res.Table.Claims {
		if c.ClaimID != wantIDs[i] {
			t.Errorf("row %d = %s, want %s", i, c.ClaimID, wantIDs[i])
		}
		if !strings.HasPrefix(c.PatientID, "MASKED_") || !strings.HasPrefix(c.PolicyID, "MASKED_") {
			t.Errorf("row %d identifiers not masked: %s %s", i, c.PatientID, c.PolicyID)
		}
	}

	// CLM001: typo-fixed status, parsed currency, untouched approved amount.
	c := res.Table.Claims[0]
	if got := *c.ClaimStatus; got != "Approved" {
		t.Errorf("CLM001 status = %q, want Approved", got)
	}
	if *c.ClaimAmount != 1500 || *c.ApprovedAmount != 1200 {
		t.Errorf("CLM001 amounts = %v/%v, want 1500/1200", *c.ClaimAmount, *c.ApprovedAmount)
	}
	if *c.ErrorType != "Unknown" || *c.DenialReason != "N/A" {
		t.Errorf("CLM001 defaults = %q/%q", *c.ErrorType, *c.DenialReason)
	}

	// CLM004: negative flipped, denied reconciliation.
	c = res.Table.Claims[1]
	if *c.ClaimAmount != 300 || *c.ApprovedAmount != 0 {
		t.Errorf("CLM004 amounts = %v/%v, want 300/0", *c.ClaimAmount, *c.ApprovedAmount)
	}
	if *c.DenialReason != "Reason Not Provided" {
		t.Errorf("CLM004 reason = %q", *c.DenialReason)
	}

	// CLM005: status inferred, approved amount backfilled.
	c = res.Table.Claims[2]
	if *c.ClaimStatus != "Approved" || *c.ApprovedAmount != 250 {
		t.Errorf("CLM005 = %q/%v, want Approved/250", *c.ClaimStatus, *c.ApprovedAmount)
	}

	m := res.Report.DataQualityMetrics
	for metric, want := range map[string]int{
		diag.MetricDuplicateClaimIDs:    1,
		diag.MetricCriticalNulls:        1,
		diag.MetricFutureDates:          1,
		diag.MetricNegativeAmountsFixed: 1,
		diag.MetricRowsRemoved:          3,
		diag.MetricFinalRows:            3,
	} {
		if got := m[metric]; got != want {
			t.Errorf("%s = %v, want %d", metric, got, want)
		}
	}

	// Both artifacts on disk, golden has header + 3 rows.
	f, err := os.Open(cfg.Output)
	if err != nil {
		t.Fatalf("golden missing: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("golden unreadable: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("golden rows = %d, want header + 3", len(rows))
	}
	if _, err := os.Stat(cfg.Report); err != nil {
		t.Errorf("report missing: %v", err)
	}
}

// Feeding the golden dataset back through the pipeline is a no-op: no rows
// removed, no fixes applied, no issues raised.
func TestRunRerunStable(t *testing.T) {
	first := testConfig(t, writeExtract(t, dirtyExtract))
	res1, err := Run(context.Background(), first, zap.NewNop())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	second := testConfig(t, first.Output)
	second.TargetRows = res1.Table.Len()
	res2, err := Run(context.Background(), second, zap.NewNop())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if res2.Table.Len() != res1.Table.Len() {
		t.Errorf("rows changed on rerun: %d -> %d", res1.Table.Len(), res2.Table.Len())
	}
	sum := res2.Report.TransformationSummary
	if sum.RowsRemoved != 0 {
		t.Errorf("rerun removed %d rows", sum.RowsRemoved)
	}
	if sum.TotalFixesApplied != 0 {
		t.Errorf("rerun applied fixes: %v", res2.Report.FixesApplied)
	}
	if got := res2.Report.IssuesFound.TotalIssues; got != 0 {
		t.Errorf("rerun raised %d issues: %+v", got, res2.Report.IssuesFound)
	}

	// Byte-identical golden output up to the report-only fields.
	b1, err := os.ReadFile(first.Output)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(second.Output)
	if err != nil {
		t.Fatal(err)
	}
	if string(b1) != string(b2) {
		t.Error("golden dataset changed on rerun")
	}
}

func TestRunMissingInput(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := Run(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing input")
	}
}

// Every phase appears exactly once and the trim runs last.
func TestPhasesOrder(t *testing.T) {
	chain := Phases(100)
	var names []string
	for _, p := range chain {
		names = append(names, p.Name())
	}
	want := []string{
		"mask", "dedup", "critical-nulls", "dates", "numeric",
		"categorical", "business-rules", "fill-nulls", "row-count",
	}
	if len(names) != len(want) {
		t.Fatalf("phases = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("phase %d = %s, want %s", i, names[i], want[i])
		}
	}
}
