// Package storage contains the storage-agnostic contract for the optional
// golden-dataset database sink. The pipeline always writes its file
// artifacts; loading the cleaned rows into a database on top of that is a
// convenience for teams that query the golden sample with SQL.
package storage

import (
	"context"
	"fmt"

	"claimsdq/internal/table"
)

// Config selects and configures a storage backend.
type Config struct {
	Kind  string // "sqlite" or "postgres"
	DSN   string
	Table string // target table name; defaults to "golden_claims"
}

// DefaultTable is used when Config.Table is empty.
const DefaultTable = "golden_claims"

// Repository is the minimal contract a backend must satisfy: create the
// target table if needed, bulk-insert rows aligned to a column list, and
// release its resources.
type Repository interface {
	EnsureTable(ctx context.Context) error
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Close()
}

// opener is a backend constructor registered by the concrete packages.
type opener func(ctx context.Context, cfg Config) (Repository, error)

var openers = map[string]opener{}

// Register installs a backend constructor for the given kind. It is called
// from the backend packages' init() functions.
func Register(kind string, fn opener) { openers[kind] = fn }

// Open constructs the Repository for cfg.Kind. Unknown kinds are an error so
// a typo in the flag fails loudly instead of silently skipping the load.
func Open(ctx context.Context, cfg Config) (Repository, error) {
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	fn, ok := openers[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// Columns is the database column list for the golden claims table, in insert
// order. run_id distinguishes pipeline runs sharing one table.
func Columns() []string {
	return []string{
		"run_id",
		"claim_id", "patient_id", "policy_id",
		"claim_type", "network_status", "date_of_service",
		"claim_amount", "approved_amount",
		"claim_status", "error_type", "denial_reason",
	}
}

// Rows converts the finished table into insert rows aligned with Columns().
// Nullable fields map to nil so backends store real NULLs; pass-through extra
// columns are file-artifact-only and are not loaded.
func Rows(runID string, t *table.Table) [][]any {
	rows := make([][]any, 0, t.Len())
	for _, c := range t.Claims {
		rows = append(rows, []any{
			runID,
			c.ClaimID, c.PatientID, c.PolicyID,
			optStr(c.ClaimType), optStr(c.NetworkStatus), optStr(c.DateOfService),
			optNum(c.ClaimAmount), optNum(c.ApprovedAmount),
			optStr(c.ClaimStatus), optStr(c.ErrorType), optStr(c.DenialReason),
		})
	}
	return rows
}

func optStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func optNum(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Load ensures the target table exists and bulk-inserts the finished rows.
func Load(ctx context.Context, repo Repository, runID string, t *table.Table) (int64, error) {
	if err := repo.EnsureTable(ctx); err != nil {
		return 0, fmt.Errorf("ensure table: %w", err)
	}
	n, err := repo.CopyFrom(ctx, Columns(), Rows(runID, t))
	if err != nil {
		return n, fmt.Errorf("copy rows: %w", err)
	}
	return n, nil
}
