package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/receiving-normalizer/constants"
	"github.com/joseph-ayodele/receiving-normalizer/internal/entity"
)

// RunCounts holds the per-stage totals recorded on a successful run.
type RunCounts struct {
	InvoiceFiles  int
	ManifestFiles int
	InvoiceLines  int
	ManifestLines int
	OutputRows    int
}

// RunRepository persists the run ledger.
type RunRepository interface {
	Start(ctx context.Context, vendor string) (uuid.UUID, error)
	FinishSuccess(ctx context.Context, id uuid.UUID, counts RunCounts) error
	FinishFailure(ctx context.Context, id uuid.UUID, errMsg string) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Run, error)
}

type runRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRunRepository(db *sql.DB, logger *slog.Logger) RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &runRepository{db: db, logger: logger}
}

func (r *runRepository) Start(ctx context.Context, vendor string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, vendor, started_at, status) VALUES (?, ?, ?, ?)`,
		id.String(), vendor, time.Now().UTC(), string(constants.RunStatusRunning),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}
	r.logger.Info("run.started", "run_id", id.String(), "vendor", vendor)
	return id, nil
}

func (r *runRepository) FinishSuccess(ctx context.Context, id uuid.UUID, counts RunCounts) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?,
			invoice_files = ?, manifest_files = ?,
			invoice_lines = ?, manifest_lines = ?, output_rows = ?
		 WHERE id = ?`,
		time.Now().UTC(), string(constants.RunStatusSucceeded),
		counts.InvoiceFiles, counts.ManifestFiles,
		counts.InvoiceLines, counts.ManifestLines, counts.OutputRows,
		id.String(),
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	r.logger.Info("run.succeeded", "run_id", id.String(), "output_rows", counts.OutputRows)
	return nil
}

func (r *runRepository) FinishFailure(ctx context.Context, id uuid.UUID, errMsg string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, error_message = ? WHERE id = ?`,
		time.Now().UTC(), string(constants.RunStatusFailed), errMsg, id.String(),
	)
	if err != nil {
		return fmt.Errorf("fail run: %w", err)
	}
	r.logger.Info("run.failed", "run_id", id.String(), "error_message", errMsg)
	return nil
}

func (r *runRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, vendor, started_at, finished_at, status,
			invoice_files, manifest_files, invoice_lines, manifest_lines,
			output_rows, error_message
		 FROM runs WHERE id = ?`, id.String(),
	)

	var (
		run      entity.Run
		idStr    string
		status   string
		finished sql.NullTime
	)
	err := row.Scan(&idStr, &run.Vendor, &run.StartedAt, &finished, &status,
		&run.InvoiceFiles, &run.ManifestFiles, &run.InvoiceLines, &run.ManifestLines,
		&run.OutputRows, &run.ErrorMessage)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	run.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse run id: %w", err)
	}
	run.Status = constants.RunStatus(status)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
