package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/common"
	"github.com/joseph-ayodele/ldg/internal/entity"
	"github.com/joseph-ayodele/ldg/internal/export"
	"github.com/joseph-ayodele/ldg/internal/repository"
	"github.com/joseph-ayodele/ldg/internal/validator"
)

// Processor runs one validation end to end: history record, validation,
// mismatch persistence and report export.
type Processor struct {
	logger    *slog.Logger
	validator *validator.Validator
	runs      repository.RunRepository // nil disables run history
	exporter  *export.Service
}

func NewProcessor(
	logger *slog.Logger,
	v *validator.Validator,
	runs repository.RunRepository,
	exporter *export.Service,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if exporter == nil {
		exporter = export.NewService(logger)
	}
	return &Processor{logger: logger, validator: v, runs: runs, exporter: exporter}
}

type RunRequest struct {
	PDFDir    string
	TruthPath string
	Reports   export.Paths
}

type RunResult struct {
	Run        entity.RunSummary
	Mismatches []entity.Mismatch
	// ExportErr holds report-writing failures; they do not fail the run.
	ExportErr error
}

// Run validates req and returns the mismatches in truth-row order. The
// returned error is a structural validation failure (missing truth source,
// bad columns, cancellation); history and export problems are only logged.
func (p *Processor) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	run := entity.RunSummary{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		PDFDir:    req.PDFDir,
		TruthPath: req.TruthPath,
		Extractor: p.validator.ExtractorName(),
		Status:    string(constants.RunStatusRunning),
	}
	history := p.runs != nil
	if history {
		if _, err := p.runs.Start(ctx, run); err != nil {
			p.logger.Warn("processor.history.start_failed", "run_id", run.ID, "error", err)
			history = false
		}
	}
	ctx = common.WithRunID(ctx, run.ID.String())
	p.logger.Info("processor.run.start",
		"run_id", run.ID,
		"pdf_dir", req.PDFDir,
		"truth", req.TruthPath,
		"extractor", run.Extractor,
	)

	res, err := p.validator.Validate(ctx, req.PDFDir, req.TruthPath)
	if err != nil {
		msg := err.Error()
		run.Status = string(constants.RunStatusError)
		run.ErrorMessage = &msg
		p.finish(history, &run)
		p.logger.Error("processor.run.failed", "run_id", run.ID, "error", err)
		return RunResult{Run: run}, err
	}

	run.TotalRows = res.TotalRows
	run.Extractions = res.Extractions
	run.Mismatches = len(res.Mismatches)
	run.Status = string(constants.RunStatusPassed)
	if run.Mismatches > 0 {
		run.Status = string(constants.RunStatusFailed)
	}

	if history {
		if err := p.runs.SaveMismatches(ctx, run.ID, res.Mismatches); err != nil {
			p.logger.Warn("processor.history.mismatches_failed", "run_id", run.ID, "error", err)
		}
	}

	out := RunResult{Mismatches: res.Mismatches}
	if !req.Reports.Empty() {
		out.ExportErr = p.exporter.WriteFiles(ctx, res.Mismatches, req.Reports)
	}

	p.finish(history, &run)
	out.Run = run
	p.logger.Info("processor.run.done",
		"run_id", run.ID,
		"status", run.Status,
		"rows", run.TotalRows,
		"mismatches", run.Mismatches,
	)
	return out, nil
}

func (p *Processor) finish(history bool, run *entity.RunSummary) {
	now := time.Now().UTC()
	run.FinishedAt = &now
	if !history {
		return
	}
	// the caller's context may already be canceled; the record should still close
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.runs.Finish(ctx, *run); err != nil {
		p.logger.Warn("processor.history.finish_failed", "run_id", run.ID, "error", err)
	}
}
