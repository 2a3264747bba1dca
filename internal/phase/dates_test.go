package phase

import (
	"testing"
	"time"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// fixedNow pins the future-date boundary for deterministic tests.
var fixedNow = func() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

/*
TestParseServiceDate verifies the layout priority:

  - DD-MM-YYYY is tried before YYYY-MM-DD and the slash forms.
  - Ambiguous slash dates resolve day-first.
  - ISO output from a previous run re-parses to the same date.
  - Null tokens and garbage fail to parse.
*/
func TestParseServiceDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // "" means ok=false
	}{
		{name: "dash_day_first", in: "15-03-2024", want: "2024-03-15"},
		{name: "iso", in: "2024-03-15", want: "2024-03-15"},
		{name: "slash_day_first", in: "15/03/2024", want: "2024-03-15"},
		{name: "slash_ambiguous_day_first_wins", in: "05/03/2024", want: "2024-03-05"},
		{name: "slash_month_first_fallback", in: "03/25/2024", want: "2024-03-25"},
		{name: "iso_roundtrip_stable", in: "2024-01-02", want: "2024-01-02"},
		{name: "empty", in: "", want: ""},
		{name: "none_token", in: "None", want: ""},
		{name: "nan_token", in: "nan", want: ""},
		{name: "garbage", in: "not-a-date", want: ""},
		{name: "impossible_day", in: "32-01-2024", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts, ok := ParseServiceDate(tc.in)
			if tc.want == "" {
				if ok {
					t.Fatalf("ParseServiceDate(%q) parsed to %v, want failure", tc.in, ts)
				}
				return
			}
			if !ok {
				t.Fatalf("ParseServiceDate(%q) failed, want %s", tc.in, tc.want)
			}
			if got := ts.Format("2006-01-02"); got != tc.want {
				t.Errorf("ParseServiceDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDatesApply(t *testing.T) {
	date := func(s string) *string { return table.Str(s) }
	tbl := &table.Table{Claims: []table.Claim{
		{ClaimID: "OK1", DateOfService: date("15-03-2024")},
		{ClaimID: "OK2", DateOfService: date("2024-03-15")},
		{ClaimID: "BAD", DateOfService: date("garbage")},
		{ClaimID: "NULL", DateOfService: nil},
		{ClaimID: "FUTURE", DateOfService: date("2030-01-01")},
		{ClaimID: "OLD", DateOfService: date("1999-12-31")},
	}}
	log := diag.NewLog()

	out := Dates{Now: fixedNow}.Apply(tbl, log)

	if out.Len() != 2 {
		t.Fatalf("rows = %d, want 2: %+v", out.Len(), out.Claims)
	}
	for _, c := range out.Claims {
		if got := table.Deref(c.DateOfService); got != "2024-03-15" {
			t.Errorf("claim %s date = %q, want 2024-03-15", c.ClaimID, got)
		}
	}

	wantMetrics := map[string]int{
		diag.MetricInvalidDates:        2, // garbage + null
		diag.MetricInvalidDatesRemoved: 2,
		diag.MetricFutureDates:         1,
		diag.MetricVeryOldDates:        1,
	}
	for k, want := range wantMetrics {
		if got := log.Metrics[k]; got != want {
			t.Errorf("%s = %d, want %d", k, got, want)
		}
	}
	if want := []string{"BAD", "NULL", "FUTURE", "OLD"}; len(log.RemovedClaimIDs) != len(want) {
		t.Errorf("removed IDs = %v, want %v", log.RemovedClaimIDs, want)
	}
}

// A date equal to "now" is not in the future and must survive.
func TestDatesApplyTodayKept(t *testing.T) {
	tbl := &table.Table{Claims: []table.Claim{
		{ClaimID: "TODAY", DateOfService: table.Str("2025-06-15")},
	}}
	log := diag.NewLog()
	out := Dates{Now: fixedNow}.Apply(tbl, log)
	if out.Len() != 1 {
		t.Fatalf("today's date removed; metrics=%v", log.Metrics)
	}
}
