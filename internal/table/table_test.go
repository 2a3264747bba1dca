package table

import (
	"reflect"
	"testing"
)

func TestColumnsOrder(t *testing.T) {
	want := []string{
		"Claim_ID", "Patient_ID", "Policy_ID", "Claim_Type", "Network_Status",
		"Date_of_Service", "Claim_Amount", "Approved_Amount", "Claim_Status",
		"Error_Type", "Denial_Reason",
	}
	if got := Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{name: "null", in: nil, want: ""},
		{name: "whole", in: Num(1500), want: "1500.00"},
		{name: "cents", in: Num(80.5), want: "80.50"},
		{name: "zero", in: Num(0), want: "0.00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AmountString(tc.in); got != tc.want {
				t.Errorf("AmountString = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCells(t *testing.T) {
	tbl := &Table{ExtraColumns: []string{"Notes", "Region"}}
	c := Claim{
		ClaimID:        "CLM001",
		PatientID:      "MASKED_AB12CD34",
		PolicyID:       "MASKED_00FF00FF",
		ClaimType:      Str("Dental"),
		NetworkStatus:  Str("In-Network"),
		DateOfService:  Str("2024-03-15"),
		ClaimAmount:    Num(1500),
		ApprovedAmount: Num(1200.5),
		ClaimStatus:    Str("Approved"),
		ErrorType:      Str("Unknown"),
		DenialReason:   Str("N/A"),
		Extra:          []string{"checked"},
	}

	want := []string{
		"CLM001", "MASKED_AB12CD34", "MASKED_00FF00FF", "Dental", "In-Network",
		"2024-03-15", "1500.00", "1200.50", "Approved", "Unknown", "N/A",
		// Extras padded to the extra-column count.
		"checked", "",
	}
	if got := tbl.Cells(c); !reflect.DeepEqual(got, want) {
		t.Errorf("Cells = %v, want %v", got, want)
	}
}

func TestCellsNullsRenderEmpty(t *testing.T) {
	tbl := &Table{}
	got := tbl.Cells(Claim{ClaimID: "CLM002"})
	want := []string{"CLM002", "", "", "", "", "", "", "", "", "", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cells = %v, want %v", got, want)
	}
}

func TestHelpers(t *testing.T) {
	if Deref(nil) != "" || Deref(Str("x")) != "x" {
		t.Error("Deref misbehaves")
	}
	if !IsBlank(nil) || !IsBlank(Str("  ")) || IsBlank(Str("v")) {
		t.Error("IsBlank misbehaves")
	}
}
