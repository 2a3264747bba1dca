package phase

import (
	"strings"
	"time"

	"claimsdq/internal/diag"
	"claimsdq/internal/table"
)

// DateFormats is the fixed parse priority for Date_of_Service. The first
// layout that parses wins, so day-first forms are preferred over month-first.
var DateFormats = []string{
	"02-01-2006",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
}

// dateNullTokens are raw values that mean "no date" rather than a malformed one.
var dateNullTokens = map[string]struct{}{
	"": {}, "None": {}, "nan": {},
}

// minServiceDate bounds Date_of_Service from below; anything earlier is
// outside the adjudication window this dataset covers.
var minServiceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Dates parses, validates, and standardizes Date_of_Service. Rows whose date
// is unparseable, in the future, or before 2000 are removed outright: a date
// is either a verifiable service fact or the record cannot be trusted for
// adjudication metrics downstream. Survivors are rewritten as YYYY-MM-DD.
type Dates struct {
	// Now supplies the upper bound for future-date checks. Defaults to
	// time.Now when nil, overridable in tests.
	Now func() time.Time
}

func (Dates) Name() string { return "dates" }

// ParseServiceDate tries the fixed layouts in priority order. ok is false for
// null tokens and for values no layout accepts.
func ParseServiceDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if _, null := dateNullTokens[s]; null {
		return time.Time{}, false
	}
	for _, layout := range DateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (d Dates) Apply(t *table.Table, log *diag.Log) *table.Table {
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}

	kept := t.Claims[:0]
	invalid, future, veryOld := 0, 0, 0
	for _, c := range t.Claims {
		ts, ok := ParseServiceDate(table.Deref(c.DateOfService))
		switch {
		case !ok:
			invalid++
			log.Removed(c.ClaimID)
			continue
		case ts.After(now):
			future++
			log.Removed(c.ClaimID)
			continue
		case ts.Before(minServiceDate):
			veryOld++
			log.Removed(c.ClaimID)
			continue
		}
		c.DateOfService = table.Str(ts.Format("2006-01-02"))
		kept = append(kept, c)
	}
	t.Claims = kept

	if invalid > 0 {
		log.Add(diag.MetricInvalidDates, invalid)
		log.Add(diag.MetricInvalidDatesRemoved, invalid)
		log.Issue(diag.Errors, table.ColDateOfService, "%d invalid dates - rows removed", invalid)
		log.Fix("Removed %d rows with invalid dates", invalid)
	}
	if future > 0 {
		log.Add(diag.MetricFutureDates, future)
		log.Issue(diag.Errors, table.ColDateOfService, "%d future dates - rows removed", future)
		log.Fix("Removed %d rows with future dates", future)
	}
	if veryOld > 0 {
		log.Add(diag.MetricVeryOldDates, veryOld)
		log.Issue(diag.Warnings, table.ColDateOfService, "%d dates before year 2000 - rows removed", veryOld)
		log.Fix("Removed %d rows with dates before year 2000", veryOld)
	}
	return t
}
