package repository

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
)

const (
	tableRuns       = "validation_run"
	tableMismatches = "run_mismatch"
)

var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS validation_run (
		id            TEXT PRIMARY KEY,
		started_at    DATETIME NOT NULL,
		finished_at   DATETIME,
		pdf_dir       TEXT NOT NULL,
		truth_path    TEXT NOT NULL,
		extractor     TEXT NOT NULL,
		total_rows    INTEGER NOT NULL DEFAULT 0,
		extractions   INTEGER NOT NULL DEFAULT 0,
		mismatches    INTEGER NOT NULL DEFAULT 0,
		status        TEXT NOT NULL,
		error_message TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS run_mismatch (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id             TEXT NOT NULL REFERENCES validation_run(id) ON DELETE CASCADE,
		seq                INTEGER NOT NULL,
		file_name          TEXT NOT NULL,
		page               INTEGER NOT NULL,
		field_name         TEXT NOT NULL,
		expected_text      TEXT NOT NULL,
		validation_error   TEXT NOT NULL,
		ocr_output_snippet TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_mismatch_run ON run_mismatch(run_id, seq)`,
}

var postgresDDL = []string{
	`CREATE TABLE IF NOT EXISTS validation_run (
		id            UUID PRIMARY KEY,
		started_at    TIMESTAMPTZ NOT NULL,
		finished_at   TIMESTAMPTZ,
		pdf_dir       TEXT NOT NULL,
		truth_path    TEXT NOT NULL,
		extractor     TEXT NOT NULL,
		total_rows    INTEGER NOT NULL DEFAULT 0,
		extractions   INTEGER NOT NULL DEFAULT 0,
		mismatches    INTEGER NOT NULL DEFAULT 0,
		status        TEXT NOT NULL,
		error_message TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS run_mismatch (
		id                 BIGSERIAL PRIMARY KEY,
		run_id             UUID NOT NULL REFERENCES validation_run(id) ON DELETE CASCADE,
		seq                INTEGER NOT NULL,
		file_name          TEXT NOT NULL,
		page               INTEGER NOT NULL,
		field_name         TEXT NOT NULL,
		expected_text      TEXT NOT NULL,
		validation_error   TEXT NOT NULL,
		ocr_output_snippet TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_mismatch_run ON run_mismatch(run_id, seq)`,
}

func (db *DB) migrate(ctx context.Context) error {
	stmts := sqliteDDL
	if db.dialect == dialect.Postgres {
		stmts = postgresDDL
	}
	for _, stmt := range stmts {
		if err := db.drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	db.logger.Debug("schema ready", "tables", []string{tableRuns, tableMismatches})
	return nil
}
