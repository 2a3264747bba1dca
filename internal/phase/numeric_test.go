package phase

import (
	"testing"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

/*
TestParseAmount verifies currency coercion:

  - "$" and thousands separators are stripped.
  - Placeholders (N/A, None, unknown, nan) null the value and count as a
    non-numeric finding; a genuinely empty cell nulls silently.
  - Unparseable values null and count.
*/
func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		null    bool
		counted bool
	}{
		{name: "plain", in: "1500.50", want: 1500.50},
		{name: "currency_symbol", in: "$1,200.00", want: 1200},
		{name: "thousands", in: "1,234,567.89", want: 1234567.89},
		{name: "negative", in: "-500", want: -500},
		{name: "spaces", in: "  250.00  ", want: 250},
		{name: "empty_silent_null", in: "", null: true, counted: false},
		{name: "na_counted", in: "N/A", null: true, counted: true},
		{name: "none_counted", in: "None", null: true, counted: true},
		{name: "unknown_counted", in: "unknown", null: true, counted: true},
		{name: "nan_token_counted", in: "NaN", null: true, counted: true},
		{name: "garbage_counted", in: "abc", null: true, counted: true},
		{name: "inf_rejected", in: "Inf", null: true, counted: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, null, counted := ParseAmount(tc.in)
			if null != tc.null || counted != tc.counted {
				t.Fatalf("ParseAmount(%q) null=%v counted=%v, want null=%v counted=%v",
					tc.in, null, counted, tc.null, tc.counted)
			}
			if !null && v != tc.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, v, tc.want)
			}
		})
	}
}

func TestNumericApply(t *testing.T) {
	tbl := &table.Table{Claims: []table.Claim{
		{ClaimID: "A", ClaimAmountRaw: "$1,500.50", ApprovedAmountRaw: "-200"},
		{ClaimID: "B", ClaimAmountRaw: "abc", ApprovedAmountRaw: ""},
	}}
	log := diag.NewLog()

	out := Numeric{}.Apply(tbl, log)

	if out.Len() != 2 {
		t.Fatalf("rows = %d, want 2 (numeric phase never removes rows)", out.Len())
	}

	a := out.Claims[0]
	if a.ClaimAmount == nil || *a.ClaimAmount != 1500.50 {
		t.Errorf("ClaimAmount = %v, want 1500.50", a.ClaimAmount)
	}
	if a.ApprovedAmount == nil || *a.ApprovedAmount != 200 {
		t.Errorf("ApprovedAmount = %v, want 200 (negative flipped)", a.ApprovedAmount)
	}

	b := out.Claims[1]
	if b.ClaimAmount != nil || b.ApprovedAmount != nil {
		t.Errorf("unparseable amounts not nulled: %+v", b)
	}

	// Raw carriers are consumed.
	for _, c := range out.Claims {
		if c.ClaimAmountRaw != "" || c.ApprovedAmountRaw != "" {
			t.Errorf("raw carriers not cleared for %s", c.ClaimID)
		}
	}

	if got := log.Metrics[diag.MetricNonNumericAmounts]; got != 1 {
		t.Errorf("non_numeric_amounts = %d, want 1 (empty cell is silent)", got)
	}
	if got := log.Metrics[diag.MetricNegativeAmountsFixed]; got != 1 {
		t.Errorf("negative_amounts_fixed = %d, want 1", got)
	}
	if len(log.ErrorIssues) != 1 {
		t.Errorf("error issues = %v, want one non-numeric finding", log.ErrorIssues)
	}
}
