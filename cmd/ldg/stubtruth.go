package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ldg/internal/truth"
)

func newStubTruthCmd(a *app) *cobra.Command {
	var pdfDir, out string
	cmd := &cobra.Command{
		Use:   "stub-truth",
		Short: "Write a starter truth CSV from the PDF file names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := truth.GenerateStub(pdfDir, out)
			if err != nil {
				return err
			}
			if n == 0 {
				a.logger.Warn("stub_truth.no_pdfs", "pdf_dir", pdfDir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Stub truth written → %s, rows=%d\n", out, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfDir, "pdf-dir", a.cfg.Paths.PDFDir, "directory containing the PDF files")
	cmd.Flags().StringVar(&out, "out", a.cfg.Paths.TruthCSV, "truth CSV to write")
	return cmd
}
