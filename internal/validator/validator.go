// Package validator checks extracted PDF text against truth rows.
package validator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/ldg/internal/common"
	"github.com/joseph-ayodele/ldg/internal/entity"
	"github.com/joseph-ayodele/ldg/internal/extract"
	"github.com/joseph-ayodele/ldg/internal/truth"
)

// Result of one validation run. Mismatches are in truth-row order.
type Result struct {
	Mismatches  []entity.Mismatch
	TotalRows   int
	Extractions int
}

type Validator struct {
	extractor extract.TextExtractor
	logger    *slog.Logger
	workers   int
	cache     bool
}

type Option func(*Validator)

// WithCache extracts each distinct (file, page) pair once per run.
func WithCache() Option {
	return func(v *Validator) { v.cache = true }
}

// WithWorkers checks up to n rows at a time. Result order is unchanged.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.workers = n
		}
	}
}

func New(extractor extract.TextExtractor, logger *slog.Logger, opts ...Option) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Validator{extractor: extractor, logger: logger, workers: 1}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate reads the truth CSV and checks every row against the PDFs in pdfDir.
// Only truth-source problems and context cancellation are returned as errors;
// every per-row failure is reported as a mismatch.
func (v *Validator) Validate(ctx context.Context, pdfDir, truthPath string) (Result, error) {
	records, err := truth.Read(truthPath)
	if err != nil {
		return Result{}, err
	}
	return v.ValidateRecords(ctx, pdfDir, records)
}

// ValidateRecords is Validate for rows that are already loaded.
func (v *Validator) ValidateRecords(ctx context.Context, pdfDir string, records []entity.TruthRecord) (Result, error) {
	logger := v.logger
	if runID := common.RunIDFromContext(ctx); runID != "" {
		logger = logger.With("run_id", runID)
	}

	start := time.Now()
	call := newExtractCall(v.extractor, v.cache)
	outcomes := make([]rowOutcome, len(records))

	if v.workers <= 1 {
		for i, rec := range records {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			outcomes[i] = v.checkRow(ctx, logger, call, pdfDir, rec)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(v.workers)
		for i, rec := range records {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes[i] = v.checkRow(gctx, logger, call, pdfDir, rec)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{TotalRows: len(records), Extractions: call.count()}
	for i, o := range outcomes {
		if m, ok := o.mismatch(records[i]); ok {
			res.Mismatches = append(res.Mismatches, m)
		}
	}

	logger.Info("validate.done",
		"rows", res.TotalRows,
		"extractions", res.Extractions,
		"mismatches", len(res.Mismatches),
		"workers", v.workers,
		"cache", v.cache,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (v *Validator) checkRow(ctx context.Context, logger *slog.Logger, call *extractCall, pdfDir string, rec entity.TruthRecord) rowOutcome {
	pdfPath := filepath.Join(pdfDir, rec.FileName)
	if _, err := os.Stat(pdfPath); err != nil {
		logger.Warn("validate.row.pdf_not_found", "line", rec.Line, "path", pdfPath)
		return pdfNotFound(pdfPath)
	}

	if rec.PageDefaulted {
		logger.Warn("validate.row.page_defaulted", "line", rec.Line, "file", rec.FileName, "raw", rec.PageRaw)
	}

	text, err := call.do(ctx, pdfPath, rec.Page)
	if err != nil {
		logger.Error("validate.row.extract_error", "line", rec.Line, "file", rec.FileName, "page", rec.Page, "error", err)
		return extractFailed(err)
	}

	if !strings.Contains(text, rec.ExpectedText) {
		logger.Warn("validate.row.mismatch",
			"line", rec.Line,
			"file", rec.FileName,
			"page", rec.Page,
			"field", rec.FieldName,
			"expected", rec.ExpectedText,
		)
		return textMismatch(text)
	}
	logger.Debug("validate.row.match", "line", rec.Line, "file", rec.FileName, "field", rec.FieldName)
	return matched()
}

// ExtractorName is the Name of the extractor this validator runs.
func (v *Validator) ExtractorName() string {
	return v.extractor.Name()
}
