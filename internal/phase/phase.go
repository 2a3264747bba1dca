// Package phase contains the ordered transformation phases of the claims
// cleaning pipeline. Each phase is a pure Table -> Table step that also
// appends findings to the shared diagnostics log; phases never return errors
// because malformed data is an expected input class handled by removal,
// repair, or inference.
//
// Phase order is part of the contract: later phases assume the invariants
// established by earlier ones (dates normalized before numerics, numerics and
// categoricals typed before the business rules run).
package phase

import (
	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// Phase is one ordered pipeline step.
type Phase interface {
	// Name identifies the phase in logs and step metrics.
	Name() string
	// Apply transforms t, recording issues, fixes, and counters on log.
	Apply(t *table.Table, log *diag.Log) *table.Table
}

// Chain is an ordered list of phases applied left to right.
type Chain []Phase

// Apply runs every phase in order and returns the final table.
func (c Chain) Apply(t *table.Table, log *diag.Log) *table.Table {
	out := t
	for _, p := range c {
		out = p.Apply(out, log)
	}
	return out
}
