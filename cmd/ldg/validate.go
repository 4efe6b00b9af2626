package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ldg/internal/common"
	"github.com/joseph-ayodele/ldg/internal/core"
	"github.com/joseph-ayodele/ldg/internal/entity"
	"github.com/joseph-ayodele/ldg/internal/export"
	"github.com/joseph-ayodele/ldg/internal/repository"
	"github.com/joseph-ayodele/ldg/internal/validator"
)

type validateFlags struct {
	engineFlags
	pdfDir   string
	truthCSV string
	reports  export.Paths
	cache    bool
	workers  int
	timeout  time.Duration
}

func newValidateCmd(a *app) *cobra.Command {
	f := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run OCR validation against a truth set",
		Long: `Run OCR over every PDF referenced by the truth CSV and report rows whose
expected text is missing from the extracted page text.

Exit codes: 0 no mismatches, 1 mismatches found, 2 input missing,
3 unexpected error, 4 cloud configuration missing, 5 cloud client unavailable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runValidate(cmd.Context(), cmd.OutOrStdout(), *f)
		},
	}
	f.engineFlags.register(cmd)
	fl := cmd.Flags()
	fl.StringVarP(&f.pdfDir, "pdf-dir", "p", a.cfg.Paths.PDFDir, "directory containing the PDF files to validate")
	fl.StringVarP(&f.truthCSV, "truth-csv", "t", a.cfg.Paths.TruthCSV, "path to the truth CSV file")
	fl.StringVar(&f.reports.CSV, "output-csv", "", "save mismatches as CSV")
	fl.StringVar(&f.reports.JSON, "output-json", "", "save mismatches as JSON")
	fl.StringVar(&f.reports.XLSX, "output-xlsx", "", "save mismatches as an Excel workbook")
	fl.BoolVar(&f.cache, "cache", false, "extract each (file, page) pair once per run")
	fl.IntVar(&f.workers, "workers", a.cfg.OCR.Workers, "rows checked concurrently")
	fl.DurationVar(&f.timeout, "timeout", a.cfg.OCR.Timeout, "abort the run after this long (0 = no limit)")
	return cmd
}

func (a *app) runValidate(ctx context.Context, out io.Writer, f validateFlags) error {
	if st, err := os.Stat(f.pdfDir); err != nil || !st.IsDir() {
		return common.NotFoundErrorf("PDF directory not found: %s", f.pdfDir)
	}
	if _, err := os.Stat(f.truthCSV); err != nil {
		return common.NotFoundErrorf("truth CSV not found: %s", f.truthCSV)
	}

	ctx, cancel := common.WithTimeout(ctx, f.timeout)
	defer cancel()

	extractor, cleanup, err := a.buildExtractor(ctx, f.engineFlags)
	if err != nil {
		return err
	}
	defer cleanup()

	var opts []validator.Option
	if f.cache {
		opts = append(opts, validator.WithCache())
	}
	if f.workers > 1 {
		opts = append(opts, validator.WithWorkers(f.workers))
	}

	var runs repository.RunRepository
	if dsn := a.cfg.Database.DSN; dsn != "" {
		db, err := repository.Open(ctx, repository.Config{DSN: dsn, DialTimeout: a.cfg.Database.DialTimeout}, a.logger)
		if err != nil {
			a.logger.Warn("run history disabled", "error", err)
		} else {
			defer db.Close()
			runs = repository.NewRunRepository(db, a.logger)
		}
	}

	fmt.Fprintf(out, "Starting validation...\n  PDF Directory: %s\n  Truth CSV: %s\n", f.pdfDir, f.truthCSV)

	proc := core.NewProcessor(a.logger, validator.New(extractor, a.logger, opts...), runs, export.NewService(a.logger))
	res, err := proc.Run(ctx, core.RunRequest{PDFDir: f.pdfDir, TruthPath: f.truthCSV, Reports: f.reports})
	if err != nil {
		return err
	}

	if len(res.Mismatches) == 0 {
		fmt.Fprintln(out, "\n✅ Validation successful! No mismatches found.")
		return nil
	}
	printMismatches(out, res.Mismatches)
	printReports(out, f.reports, res.ExportErr)
	return errMismatches
}

func printMismatches(out io.Writer, mismatches []entity.Mismatch) {
	fmt.Fprintf(out, "\n⚠️ Found %d mismatch(es):\n", len(mismatches))
	for i, m := range mismatches {
		fmt.Fprintf(out, "\n--- Mismatch %d ---\n", i+1)
		fmt.Fprintf(out, "  File: %s\n", m.FileName)
		fmt.Fprintf(out, "  Page: %d\n", m.Page)
		fmt.Fprintf(out, "  Field: %s\n", m.FieldName)
		fmt.Fprintf(out, "  Expected Text: '%s'\n", m.ExpectedText)
		fmt.Fprintf(out, "  Validation Error: %s\n", m.ValidationError)
		if m.OCROutputSnippet != "" {
			fmt.Fprintf(out, "  OCR Snippet: '%s'\n", m.OCROutputSnippet)
		}
	}
}

func printReports(out io.Writer, paths export.Paths, exportErr error) {
	if paths.Empty() {
		return
	}
	if exportErr != nil {
		fmt.Fprintf(out, "\n❌ Error saving mismatch reports: %v\n", exportErr)
		return
	}
	for _, p := range []string{paths.CSV, paths.JSON, paths.XLSX} {
		if p != "" {
			fmt.Fprintf(out, "\n💾 Mismatches saved to: %s\n", p)
		}
	}
}
