package phase

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// Mask pseudonymizes the PII identifier columns (Patient_ID, Policy_ID) by
// replacing every non-empty value with "MASKED_" + the first 8 hex chars of
// its SHA-256, uppercased. The mapping is deterministic within and across
// runs, so masked IDs stay joinable without being reversible. No rows are
// removed.
type Mask struct{}

func (Mask) Name() string { return "mask" }

const maskPrefix = "MASKED_"

// MaskID returns the masked token for a raw identifier. Empty and
// already-masked values pass through unchanged; re-hashing a masked token
// would break the rerun-stability of the golden dataset.
func MaskID(v string) string {
	if strings.TrimSpace(v) == "" || isMasked(v) {
		return v
	}
	sum := sha256.Sum256([]byte(v))
	return maskPrefix + strings.ToUpper(hex.EncodeToString(sum[:])[:8])
}

func isMasked(v string) bool {
	if len(v) != len(maskPrefix)+8 || !strings.HasPrefix(v, maskPrefix) {
		return false
	}
	for _, r := range v[len(maskPrefix):] {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

func (Mask) Apply(t *table.Table, log *diag.Log) *table.Table {
	patients, policies := 0, 0
	for i := range t.Claims {
		c := &t.Claims[i]
		if m := MaskID(c.PatientID); m != c.PatientID {
			c.PatientID = m
			patients++
		}
		if m := MaskID(c.PolicyID); m != c.PolicyID {
			c.PolicyID = m
			policies++
		}
	}
	log.Add(diag.MetricMaskedPatientIDs, patients)
	log.Add(diag.MetricMaskedPolicyIDs, policies)
	if patients > 0 {
		log.Fix("Masked %d Patient_IDs", patients)
	}
	if policies > 0 {
		log.Fix("Masked %d Policy_IDs", policies)
	}
	return t
}
