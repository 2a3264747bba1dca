// Package postgres implements a Postgres-backed storage.Repository using
// pgx v5. Rows are bulk-loaded with the COPY protocol, which is the fastest
// insert path Postgres offers; the sink is append-only so no staging table or
// upsert is needed.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"claimsdq/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  storage.Config
}

// NewRepository constructs a Repository from a pgxpool DSN.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	return &Repository{pool: pool, cfg: cfg}, nil
}

// EnsureTable creates the golden claims table if it does not already exist.
func (r *Repository) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id          text NOT NULL,
	claim_id        text NOT NULL,
	patient_id      text NOT NULL,
	policy_id       text NOT NULL,
	claim_type      text,
	network_status  text,
	date_of_service text,
	claim_amount    numeric(14,2),
	approved_amount numeric(14,2),
	claim_status    text,
	error_type      text,
	denial_reason   text
)`, pgFQN(r.cfg.Table))
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// CopyFrom streams the rows into the target table with the COPY protocol.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	ident := pgx.Identifier(strings.Split(r.cfg.Table, "."))
	n, err := r.pool.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return n, fmt.Errorf("copy: %s (%s)", pgErr.Detail, pgErr.SQLState())
		}
		return n, fmt.Errorf("copy: %w", err)
	}
	return n, nil
}

func (r *Repository) Close() { r.pool.Close() }

// pgIdent quotes a single identifier.
func pgIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// pgFQN quotes a possibly schema-qualified table name part by part.
func pgFQN(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}
