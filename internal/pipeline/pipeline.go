// Package pipeline wires the cleaning phases into a single run: read the raw
// extract, apply the ordered phase chain, assemble the quality report, write
// both artifacts, and optionally load the golden rows into a database sink.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimsdq/internal/config"
	"claimsdq/internal/diag"
	"claimsdq/internal/metrics"
	"claimsdq/internal/output"
	csvparser "claimsdq/internal/parser/csv"
	"claimsdq/internal/phase"
	"claimsdq/internal/report"
	"claimsdq/internal/storage"
	"claimsdq/internal/table"
)

// Result summarizes a finished run for the caller.
type Result struct {
	RunID        string
	Report       *report.Report
	Table        *table.Table
	OriginalRows int
	RowsLoaded   int64
	Duration     time.Duration
}

// Phases returns the phase chain in its fixed execution order. Masking runs
// first so no later diagnostic can leak a raw identifier; the trim runs last
// so it only ever discards clean rows.
func Phases(targetRows int) phase.Chain {
	return phase.Chain{
		phase.Mask{},
		phase.DeDup{},
		phase.CriticalNull{},
		phase.Dates{},
		phase.Numeric{},
		phase.Categorical{},
		phase.Rules{},
		phase.Fill{},
		phase.RowCount{Target: targetRows},
	}
}

// Run executes the full pipeline for cfg. The returned error covers input and
// artifact failures; quality problems in the data are never errors, they are
// findings in the report.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID), zap.String("job", cfg.Job))

	t, err := csvparser.ReadFile(cfg.Input, csvparser.Options{Comma: cfg.Comma})
	if err != nil {
		return nil, err
	}
	originalRows := t.Len()
	originalCols := t.NumColumns()
	logger.Info("input loaded",
		zap.String("path", cfg.Input),
		zap.Int("rows", originalRows),
		zap.Int("columns", originalCols),
	)
	metrics.RecordRows(cfg.Job, "input", int64(originalRows))

	log := diag.NewLog()
	for _, p := range Phases(cfg.TargetRows) {
		before := t.Len()
		phaseStart := time.Now()
		t = p.Apply(t, log)
		elapsed := time.Since(phaseStart)
		metrics.RecordPhase(cfg.Job, p.Name(), nil, elapsed)
		logger.Info("phase complete",
			zap.String("phase", p.Name()),
			zap.Int("rows_in", before),
			zap.Int("rows_out", t.Len()),
			zap.Duration("took", elapsed),
		)
	}

	meta := report.Metadata{
		RunID:          runID,
		InputFile:      cfg.Input,
		OutputFile:     cfg.Output,
		DurationMillis: time.Since(start).Milliseconds(),
	}
	rep := report.Build(t, log, meta, originalRows, originalCols)

	metrics.RecordRows(cfg.Job, "removed", int64(originalRows-t.Len()))
	metrics.RecordRows(cfg.Job, "output", int64(t.Len()))
	metrics.RecordFixes(cfg.Job, int64(len(log.Fixes)))
	metrics.RecordIssues(cfg.Job, "critical", int64(len(log.CriticalIssues)))
	metrics.RecordIssues(cfg.Job, "errors", int64(len(log.ErrorIssues)))
	metrics.RecordIssues(cfg.Job, "warnings", int64(len(log.WarningIssues)))

	if err := output.WriteArtifacts(cfg.Output, cfg.Report, t, rep); err != nil {
		return nil, err
	}
	logger.Info("artifacts written",
		zap.String("golden", cfg.Output),
		zap.String("report", cfg.Report),
		zap.Int("rows", t.Len()),
		zap.String("completeness", report.FormatPct(rep.TransformationSummary.DataCompletenessPct)),
		zap.Int("fixes", len(log.Fixes)),
		zap.Int("issues", log.TotalIssues()),
	)

	res := &Result{
		RunID:        runID,
		Report:       rep,
		Table:        t,
		OriginalRows: originalRows,
		Duration:     time.Since(start),
	}

	if cfg.Storage.Kind != "" {
		n, err := sink(ctx, cfg, runID, t)
		if err != nil {
			return res, fmt.Errorf("storage sink: %w", err)
		}
		res.RowsLoaded = n
		logger.Info("golden rows loaded",
			zap.String("kind", cfg.Storage.Kind),
			zap.Int64("rows", n),
		)
	}
	return res, nil
}

func sink(ctx context.Context, cfg config.Config, runID string, t *table.Table) (int64, error) {
	repo, err := storage.Open(ctx, storage.Config{
		Kind:  cfg.Storage.Kind,
		DSN:   cfg.Storage.DSN,
		Table: cfg.Storage.Table,
	})
	if err != nil {
		return 0, err
	}
	defer repo.Close()
	return storage.Load(ctx, repo, runID, t)
}
