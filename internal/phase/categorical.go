package phase

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// TypoFixes is the fixed per-column correction table applied after casing
// normalization. Keys are exact post-title-case values. This is configuration
// data, not logic; keep additions declarative so the table stays unit-testable
// on its own.
var TypoFixes = map[string]map[string]string{
	table.ColClaimType: {
		"Cosmtic":  "Cosmetic",
		"Genral":   "General",
		"Emergncy": "Emergency",
	},
	table.ColNetworkStatus: {
		// "Out-Of-Network" is the title-case fixed point; canonicalizing to it
		// keeps a second run from re-touching already-clean values.
		"Out-Network": "Out-Of-Network",
		"Out-Ntwk":    "Out-Of-Network",
	},
	table.ColClaimStatus: {
		"Approvd":   "Approved",
		"Pnding":    "Pending",
		"In Review": "Pending",
	},
}

// categoricalNullTokens are post-title-case values that mean "no value".
var categoricalNullTokens = map[string]struct{}{
	"None": {}, "Nan": {}, "": {},
}

// Categorical trims and title-cases the four categorical columns, nulls the
// literal None/Nan/empty strings, and applies the typo-correction table.
type Categorical struct{}

func (Categorical) Name() string { return "categorical" }

func (Categorical) Apply(t *table.Table, log *diag.Log) *table.Table {
	titler := cases.Title(language.English)

	cols := []struct {
		name string
		get  func(*table.Claim) **string
	}{
		{table.ColClaimType, func(c *table.Claim) **string { return &c.ClaimType }},
		{table.ColNetworkStatus, func(c *table.Claim) **string { return &c.NetworkStatus }},
		{table.ColClaimStatus, func(c *table.Claim) **string { return &c.ClaimStatus }},
		{table.ColErrorType, func(c *table.Claim) **string { return &c.ErrorType }},
	}

	totalTypos := 0
	for _, col := range cols {
		typos := 0
		fixes := TypoFixes[col.name]
		for i := range t.Claims {
			field := col.get(&t.Claims[i])
			if *field == nil {
				continue
			}
			v := titler.String(strings.TrimSpace(**field))
			if _, null := categoricalNullTokens[v]; null {
				*field = nil
				continue
			}
			if fixed, ok := fixes[v]; ok {
				v = fixed
				typos++
			}
			*field = table.Str(v)
		}
		if typos > 0 {
			totalTypos += typos
			log.Fix("Fixed %d typos in %s", typos, col.name)
		}
	}
	if totalTypos > 0 {
		log.Add(diag.MetricCategoricalTyposFixed, totalTypos)
	}
	return t
}
