// Package csv reads the raw claims extract into the in-memory table. It is a
// deliberately forgiving reader: lazy quotes, variable-width rows padded or
// truncated to the header, and a UTF-8 BOM stripped from the first header
// cell. Structural damage is tolerated here because the pipeline phases are
// the place where bad *values* get handled; only a missing file or an
// unusable header is an error.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"claimsdq/internal/table"
)

// Options configures the reader. All fields are optional.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune
}

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// ReadFile opens path and delegates to Read. A missing or unreadable file is
// a fatal error for the run.
func ReadFile(path string, opt Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	t, err := Read(f, opt)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Read parses the delimited claims extract from r. The canonical columns must
// all be present (case-sensitive); any other columns are captured as
// pass-through extras in their original order.
func Read(r io.Reader, opt Options) (*table.Table, error) {
	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	canonical := make(map[string]struct{}, len(table.Columns()))
	for _, name := range table.Columns() {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		canonical[name] = struct{}{}
	}

	t := &table.Table{}
	var extraIdx []int
	for i, name := range header {
		if _, ok := canonical[name]; !ok {
			t.ExtraColumns = append(t.ExtraColumns, name)
			extraIdx = append(extraIdx, i)
		}
	}

	cell := func(rec []string, name string) string {
		i := idx[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	// Empty cells become nil so the phases see one kind of null.
	optional := func(rec []string, name string) *string {
		if v := cell(rec, name); v != "" {
			return table.Str(v)
		}
		return nil
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		c := table.Claim{
			ClaimID:           cell(rec, table.ColClaimID),
			PatientID:         cell(rec, table.ColPatientID),
			PolicyID:          cell(rec, table.ColPolicyID),
			ClaimType:         optional(rec, table.ColClaimType),
			NetworkStatus:     optional(rec, table.ColNetworkStatus),
			DateOfService:     optional(rec, table.ColDateOfService),
			ClaimStatus:       optional(rec, table.ColClaimStatus),
			ErrorType:         optional(rec, table.ColErrorType),
			DenialReason:      optional(rec, table.ColDenialReason),
			ClaimAmountRaw:    cell(rec, table.ColClaimAmount),
			ApprovedAmountRaw: cell(rec, table.ColApprovedAmount),
		}
		if len(extraIdx) > 0 {
			c.Extra = make([]string, len(extraIdx))
			for j, i := range extraIdx {
				if i < len(rec) {
					c.Extra[j] = rec[i]
				}
			}
		}
		t.Claims = append(t.Claims, c)
	}
	return t, nil
}
