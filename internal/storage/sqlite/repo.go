// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. It performs batched INSERTs inside a transaction; SQLite does
// not have a dedicated bulk-load API like Postgres COPY, but a single
// transaction keeps performance acceptable for golden-sample volumes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // cgo-free driver

	"claimsdq/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// NewRepository opens a SQLite connection using the provided DSN.
//
// DSN is passed directly to database/sql; for example:
//
//	"file:claims.db?cache=shared&_fk=1"
//	"claims.db"
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// Ping with a short timeout to fail fast on invalid DSNs.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Repository{db: db, cfg: cfg}, nil
}

// EnsureTable creates the golden claims table if it does not already exist.
func (r *Repository) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id          TEXT NOT NULL,
	claim_id        TEXT NOT NULL,
	patient_id      TEXT NOT NULL,
	policy_id       TEXT NOT NULL,
	claim_type      TEXT,
	network_status  TEXT,
	date_of_service TEXT,
	claim_amount    REAL,
	approved_amount REAL,
	claim_status    TEXT,
	error_type      TEXT,
	denial_reason   TEXT
)`, r.cfg.Table)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("sqlite: create table: %w", err)
	}
	return nil
}

// CopyFrom inserts the given rows into the configured table using a single
// transaction and a prepared INSERT statement.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		r.cfg.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

func (r *Repository) Close() { r.db.Close() }
