package phase

import (
	"math"
	"strconv"
	"strings"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// amountNullTokens are placeholder values that mean "no amount". They null the
// cell and count toward non_numeric_amounts; a genuinely empty cell nulls
// silently so a clean rerun reports zero findings.
var amountNullTokens = map[string]struct{}{
	"n/a": {}, "none": {}, "unknown": {}, "nan": {},
}

// Numeric coerces Claim_Amount and Approved_Amount to floats: currency symbol
// and thousands separators are stripped, placeholders and parse failures
// become null, negatives are flipped to their absolute value, and everything
// is rounded to two decimals. This phase never drops a row; resolving the
// nulls it leaves behind is the business-rule engine's job.
type Numeric struct{}

func (Numeric) Name() string { return "numeric" }

// ParseAmount converts a raw currency string. null is true when the value is
// empty or a placeholder; counted is true when the null should be reported as
// a non-numeric finding.
func ParseAmount(raw string) (v float64, null, counted bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true, false
	}
	if _, ok := amountNullTokens[strings.ToLower(s)]; ok {
		return 0, true, true
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, true
	}
	return f, false, false
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

func (Numeric) Apply(t *table.Table, log *diag.Log) *table.Table {
	cols := []struct {
		name string
		raw  func(*table.Claim) *string
		dst  func(*table.Claim) **float64
	}{
		{table.ColClaimAmount,
			func(c *table.Claim) *string { return &c.ClaimAmountRaw },
			func(c *table.Claim) **float64 { return &c.ClaimAmount }},
		{table.ColApprovedAmount,
			func(c *table.Claim) *string { return &c.ApprovedAmountRaw },
			func(c *table.Claim) **float64 { return &c.ApprovedAmount }},
	}

	for _, col := range cols {
		nonNumeric, negatives := 0, 0
		for i := range t.Claims {
			c := &t.Claims[i]
			raw := col.raw(c)
			v, null, counted := ParseAmount(*raw)
			*raw = ""
			if null {
				if counted {
					nonNumeric++
				}
				*col.dst(c) = nil
				continue
			}
			if v < 0 {
				v = -v
				negatives++
			}
			*col.dst(c) = table.Num(round2(v))
		}
		if nonNumeric > 0 {
			log.Add(diag.MetricNonNumericAmounts, nonNumeric)
			log.Issue(diag.Errors, col.name, "%d non-numeric values set to null", nonNumeric)
		}
		if negatives > 0 {
			log.Add(diag.MetricNegativeAmountsFixed, negatives)
			log.Fix("Fixed %d negative values in %s", negatives, col.name)
		}
	}
	return t
}
