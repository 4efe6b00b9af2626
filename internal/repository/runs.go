package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/common"
	"github.com/joseph-ayodele/ldg/internal/entity"
)

type RunRepository interface {
	// Start records a RUNNING run and returns its ID (generated when run.ID is nil).
	Start(ctx context.Context, run entity.RunSummary) (uuid.UUID, error)
	// Finish stores the final counters, status and finish time of run.
	Finish(ctx context.Context, run entity.RunSummary) error
	SaveMismatches(ctx context.Context, runID uuid.UUID, mismatches []entity.Mismatch) error
	Get(ctx context.Context, id uuid.UUID) (*entity.RunSummary, error)
	List(ctx context.Context, limit int) ([]*entity.RunSummary, error)
	Mismatches(ctx context.Context, runID uuid.UUID) ([]entity.Mismatch, error)
}

type runRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewRunRepository(db *DB, logger *slog.Logger) RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &runRepository{db: db, logger: logger}
}

// mismatchBatchSize keeps each INSERT under SQLite's bind-variable limit.
const mismatchBatchSize = 500

var runColumns = []string{
	"id", "started_at", "finished_at", "pdf_dir", "truth_path", "extractor",
	"total_rows", "extractions", "mismatches", "status", "error_message",
}

func (r *runRepository) Start(ctx context.Context, run entity.RunSummary) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = string(constants.RunStatusRunning)
	}

	query, args := r.db.builder().Insert(tableRuns).
		Columns(runColumns...).
		Values(
			run.ID.String(), run.StartedAt.UTC(), nullTime(run.FinishedAt), run.PDFDir, run.TruthPath, run.Extractor,
			run.TotalRows, run.Extractions, run.Mismatches, run.Status, nullString(run.ErrorMessage),
		).
		Query()
	if err := r.db.drv.Exec(ctx, query, args, nil); err != nil {
		r.logger.Error("failed to insert run", "run_id", run.ID, "error", err)
		return uuid.Nil, fmt.Errorf("%w: insert run: %v", common.ErrDatabase, err)
	}
	r.logger.Debug("run started", "run_id", run.ID)
	return run.ID, nil
}

func (r *runRepository) Finish(ctx context.Context, run entity.RunSummary) error {
	finished := time.Now().UTC()
	if run.FinishedAt != nil {
		finished = run.FinishedAt.UTC()
	}

	query, args := r.db.builder().Update(tableRuns).
		Set("finished_at", finished).
		Set("total_rows", run.TotalRows).
		Set("extractions", run.Extractions).
		Set("mismatches", run.Mismatches).
		Set("status", run.Status).
		Set("error_message", nullString(run.ErrorMessage)).
		Where(entsql.EQ("id", run.ID.String())).
		Query()

	var res sql.Result
	if err := r.db.drv.Exec(ctx, query, args, &res); err != nil {
		r.logger.Error("failed to finish run", "run_id", run.ID, "error", err)
		return fmt.Errorf("%w: update run: %v", common.ErrDatabase, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NotFoundErrorf("run %s", run.ID)
	}
	return nil
}

func (r *runRepository) SaveMismatches(ctx context.Context, runID uuid.UUID, mismatches []entity.Mismatch) error {
	if len(mismatches) == 0 {
		return nil
	}
	tx, err := r.db.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", common.ErrDatabase, err)
	}
	for start := 0; start < len(mismatches); start += mismatchBatchSize {
		end := min(start+mismatchBatchSize, len(mismatches))
		ins := r.db.builder().Insert(tableMismatches).
			Columns("run_id", "seq", "file_name", "page", "field_name", "expected_text", "validation_error", "ocr_output_snippet")
		for i := start; i < end; i++ {
			m := mismatches[i]
			ins.Values(runID.String(), i, m.FileName, m.Page, m.FieldName, m.ExpectedText, m.ValidationError, m.OCROutputSnippet)
		}
		query, args := ins.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			_ = tx.Rollback()
			r.logger.Error("failed to insert mismatches", "run_id", runID, "count", len(mismatches), "offset", start, "error", err)
			return fmt.Errorf("%w: insert mismatches: %v", common.ErrDatabase, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", common.ErrDatabase, err)
	}
	return nil
}

func (r *runRepository) Get(ctx context.Context, id uuid.UUID) (*entity.RunSummary, error) {
	b := r.db.builder()
	query, args := b.Select(runColumns...).
		From(b.Table(tableRuns)).
		Where(entsql.EQ("id", id.String())).
		Query()
	runs, err := r.queryRuns(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, common.NotFoundErrorf("run %s", id)
	}
	return runs[0], nil
}

// List returns the most recent runs first. limit <= 0 means 20.
func (r *runRepository) List(ctx context.Context, limit int) ([]*entity.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	b := r.db.builder()
	query, args := b.Select(runColumns...).
		From(b.Table(tableRuns)).
		OrderBy(entsql.Desc("started_at"), entsql.Desc("id")).
		Limit(limit).
		Query()
	return r.queryRuns(ctx, query, args)
}

func (r *runRepository) queryRuns(ctx context.Context, query string, args []any) ([]*entity.RunSummary, error) {
	rows := &entsql.Rows{}
	if err := r.db.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("%w: query runs: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []*entity.RunSummary
	for rows.Next() {
		var (
			id       string
			finished sql.NullTime
			errMsg   sql.NullString
			run      entity.RunSummary
		)
		if err := rows.Scan(&id, &run.StartedAt, &finished, &run.PDFDir, &run.TruthPath, &run.Extractor,
			&run.TotalRows, &run.Extractions, &run.Mismatches, &run.Status, &errMsg); err != nil {
			return nil, fmt.Errorf("%w: scan run: %v", common.ErrDatabase, err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: run id %q: %v", common.ErrDatabase, id, err)
		}
		run.ID = parsed
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		if errMsg.Valid {
			s := errMsg.String
			run.ErrorMessage = &s
		}
		out = append(out, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate runs: %v", common.ErrDatabase, err)
	}
	return out, nil
}

func (r *runRepository) Mismatches(ctx context.Context, runID uuid.UUID) ([]entity.Mismatch, error) {
	b := r.db.builder()
	query, args := b.Select("file_name", "page", "field_name", "expected_text", "validation_error", "ocr_output_snippet").
		From(b.Table(tableMismatches)).
		Where(entsql.EQ("run_id", runID.String())).
		OrderBy("seq").
		Query()

	rows := &entsql.Rows{}
	if err := r.db.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("%w: query mismatches: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []entity.Mismatch
	for rows.Next() {
		var m entity.Mismatch
		if err := rows.Scan(&m.FileName, &m.Page, &m.FieldName, &m.ExpectedText, &m.ValidationError, &m.OCROutputSnippet); err != nil {
			return nil, fmt.Errorf("%w: scan mismatch: %v", common.ErrDatabase, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate mismatches: %v", common.ErrDatabase, err)
	}
	return out, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
