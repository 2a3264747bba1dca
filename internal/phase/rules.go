package phase

import (
	"strings"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// Rules is the business-rule engine. The seven rules run in a fixed order and
// each only fires on rows matching its guard; the order is part of the
// contract (demoting an approved-with-error row must happen before the
// approved-amount backfill, or the demoted row would be backfilled anyway).
type Rules struct{}

func (Rules) Name() string { return "business-rules" }

// errorNullTokens are Error_Type values that do not represent a real error.
var errorNullTokens = map[string]struct{}{
	"": {}, "none": {}, "nan": {}, "unknown": {},
}

// reasonNullTokens are Denial_Reason values that do not count as a reason.
var reasonNullTokens = map[string]struct{}{
	"": {}, "n/a": {}, "none": {}, "nan": {},
}

func hasRealError(c *table.Claim) bool {
	if c.ErrorType == nil {
		return false
	}
	_, null := errorNullTokens[strings.ToLower(strings.TrimSpace(*c.ErrorType))]
	return !null
}

func hasRealReason(c *table.Claim) bool {
	if c.DenialReason == nil {
		return false
	}
	_, null := reasonNullTokens[strings.ToLower(strings.TrimSpace(*c.DenialReason))]
	return !null
}

func statusContains(c *table.Claim, sub string) bool {
	return c.ClaimStatus != nil && strings.Contains(strings.ToLower(*c.ClaimStatus), sub)
}

func (Rules) Apply(t *table.Table, log *diag.Log) *table.Table {
	// Rule 1: infer missing Claim_Status from amounts and error state.
	inferredApproved, inferredDenied, inferredPending := 0, 0, 0
	for i := range t.Claims {
		c := &t.Claims[i]
		if c.ClaimStatus != nil || c.ClaimAmount == nil {
			continue
		}
		switch {
		// A missing approved amount with no error still reads as an approval;
		// rule 6 backfills the amount from the claim afterwards.
		case (c.ApprovedAmount == nil || *c.ApprovedAmount > 0) && !hasRealError(c):
			c.ClaimStatus = table.Str("Approved")
			inferredApproved++
		case hasRealError(c) && hasRealReason(c):
			c.ClaimStatus = table.Str("Denied")
			inferredDenied++
		case hasRealError(c):
			c.ClaimStatus = table.Str("Pending")
			inferredPending++
		}
	}
	log.Add(diag.MetricStatusInferred, inferredApproved+inferredDenied+inferredPending)
	if inferredApproved > 0 {
		log.Fix("Inferred %d claims as 'Approved' (has amounts, no errors)", inferredApproved)
	}
	if inferredDenied > 0 {
		log.Fix("Inferred %d claims as 'Denied' (has error + denial reason)", inferredDenied)
	}
	if inferredPending > 0 {
		log.Fix("Inferred %d claims as 'Pending' (has error, no denial reason)", inferredPending)
	}

	// Rule 2: a claim carrying a real error type must not stay approved.
	// Demote to Pending, never silently keep the approval.
	demoted := 0
	for i := range t.Claims {
		c := &t.Claims[i]
		if statusContains(c, "approv") && hasRealError(c) {
			c.ClaimStatus = table.Str("Pending")
			demoted++
		}
	}
	if demoted > 0 {
		log.Add(diag.MetricApprovedWithErrorFix, demoted)
		log.Issue(diag.Errors, table.ColClaimStatus,
			"%d approved claims have error types - changed to Pending", demoted)
		log.Fix("Changed %d claims from 'Approved' to 'Pending' (has error type)", demoted)
	}

	// Rule 3: denied claims carry Approved_Amount = 0, whether the current
	// value is positive or missing.
	zeroed, filled := 0, 0
	for i := range t.Claims {
		c := &t.Claims[i]
		if !statusContains(c, "denied") {
			continue
		}
		switch {
		case c.ApprovedAmount != nil && *c.ApprovedAmount > 0:
			c.ApprovedAmount = table.Num(0)
			zeroed++
		case c.ApprovedAmount == nil:
			c.ApprovedAmount = table.Num(0)
			filled++
		}
	}
	log.Add(diag.MetricDeniedAmountZeroed, zeroed+filled)
	if zeroed > 0 {
		log.Fix("Set %d denied claims Approved_Amount to 0.0", zeroed)
	}
	if filled > 0 {
		log.Fix("Filled %d denied claims with Approved_Amount = 0.0", filled)
	}

	// Rule 4: denied claims must state a reason.
	backfilled := 0
	for i := range t.Claims {
		c := &t.Claims[i]
		if statusContains(c, "denied") && !hasRealReason(c) {
			c.DenialReason = table.Str("Reason Not Provided")
			backfilled++
		}
	}
	if backfilled > 0 {
		log.Add(diag.MetricDeniedWithoutReason, backfilled)
		log.Fix("Filled %d missing denial reasons", backfilled)
	}

	// Rule 5: pending claims default a missing Approved_Amount to 0.
	// A pre-existing value, including an explicit 0 or a positive amount,
	// stays untouched (policy-review candidate, preserved deliberately).
	pendingFilled := 0
	for i := range t.Claims {
		c := &t.Claims[i]
		if statusContains(c, "pending") && c.ApprovedAmount == nil {
			c.ApprovedAmount = table.Num(0)
			pendingFilled++
		}
	}
	if pendingFilled > 0 {
		log.Add(diag.MetricPendingAmountFilled, pendingFilled)
		log.Fix("Filled %d pending claims with NULL Approved_Amount -> 0.0", pendingFilled)
	}

	// Rule 6: approved claims without a real error and without a usable
	// approved amount get the full claim amount (conservative full-approval
	// assumption). Requires a present claim amount: there is nothing sane to
	// copy from a null one.
	approvedFilled := 0
	for i := range t.Claims {
		c := &t.Claims[i]
		if !statusContains(c, "approv") || hasRealError(c) || c.ClaimAmount == nil {
			continue
		}
		if c.ApprovedAmount == nil || *c.ApprovedAmount == 0 {
			c.ApprovedAmount = table.Num(*c.ClaimAmount)
			approvedFilled++
		}
	}
	if approvedFilled > 0 {
		log.Add(diag.MetricApprovedAmountFilled, approvedFilled)
		log.Fix("Filled %d approved claims Approved_Amount with Claim_Amount", approvedFilled)
	}

	// Rule 7: approved never exceeds claimed; cap at the claim amount.
	capped := 0
	for i := range t.Claims {
		c := &t.Claims[i]
		if c.ApprovedAmount != nil && c.ClaimAmount != nil && *c.ApprovedAmount > *c.ClaimAmount {
			c.ApprovedAmount = table.Num(*c.ClaimAmount)
			capped++
		}
	}
	if capped > 0 {
		log.Add(diag.MetricApprovedExceedsClaim, capped)
		log.Fix("Adjusted %d cases where approved > claim", capped)
	}

	return t
}
