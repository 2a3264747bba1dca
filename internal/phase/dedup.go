package phase

import (
	"strings"

	"github.com/zeebo/xxh3"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// DeDup removes duplicate claims in two ordered passes: first rows whose
// Claim_ID has already appeared (keeping the first occurrence), then exact
// full-row duplicates among what remains. Removed claim IDs are recorded for
// traceability.
type DeDup struct{}

func (DeDup) Name() string { return "dedup" }

// rowKey hashes every cell of the row, canonical columns and extras alike.
// xxh3 is plenty for intra-batch duplicate detection; collisions are not a
// correctness concern at golden-sample sizes.
func rowKey(t *table.Table, c table.Claim) uint64 {
	var b strings.Builder
	for _, cell := range t.Cells(c) {
		b.WriteString(cell)
		b.WriteByte(0x1f)
	}
	// Amounts are still raw strings at dedup time; Cells renders the typed
	// fields, so the raw carriers must feed the key as well.
	b.WriteString(c.ClaimAmountRaw)
	b.WriteByte(0x1f)
	b.WriteString(c.ApprovedAmountRaw)
	return xxh3.HashString(b.String())
}

func (d DeDup) Apply(t *table.Table, log *diag.Log) *table.Table {
	// Pass 1: duplicate claim IDs, first occurrence wins.
	seenID := make(map[string]struct{}, len(t.Claims))
	kept := t.Claims[:0]
	dupIDs := 0
	for _, c := range t.Claims {
		if c.ClaimID != "" {
			if _, ok := seenID[c.ClaimID]; ok {
				dupIDs++
				log.Removed(c.ClaimID)
				continue
			}
			seenID[c.ClaimID] = struct{}{}
		}
		kept = append(kept, c)
	}
	t.Claims = kept

	if dupIDs > 0 {
		log.Add(diag.MetricDuplicateClaimIDs, dupIDs)
		log.Issue(diag.Critical, table.ColClaimID, "%d duplicates removed", dupIDs)
		log.Fix("Removed %d duplicate Claim_IDs", dupIDs)
	}

	// Pass 2: full-row duplicates among the survivors.
	seenRow := make(map[uint64]struct{}, len(t.Claims))
	kept = t.Claims[:0]
	dupRows := 0
	for _, c := range t.Claims {
		k := rowKey(t, c)
		if _, ok := seenRow[k]; ok {
			dupRows++
			log.Removed(c.ClaimID)
			continue
		}
		seenRow[k] = struct{}{}
		kept = append(kept, c)
	}
	t.Claims = kept

	if dupRows > 0 {
		log.Add(diag.MetricDuplicateRows, dupRows)
		log.Issue(diag.Warnings, "ROWS", "%d duplicate rows removed", dupRows)
		log.Fix("Removed %d duplicate rows", dupRows)
	}
	return t
}
