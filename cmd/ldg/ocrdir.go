package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ldg/internal/ocr"
)

func newOCRDirCmd(a *app) *cobra.Command {
	var (
		inDir, outDir string
		page          int
	)
	cmd := &cobra.Command{
		Use:   "ocr-dir",
		Short: "OCR one page of every PDF in a directory into .txt files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oc := a.cfg.OCR
			if err := oc.Validate(); err != nil {
				return err
			}
			e := ocr.NewExtractor(ocr.Config{
				Ghostscript: oc.Ghostscript,
				Tesseract:   oc.Tesseract,
				TessdataDir: oc.TessdataDir,
				Lang:        oc.Lang,
				DPI:         oc.DPI,
				PSM:         oc.PSM,
				TempRoot:    oc.TempRoot,
				Normalize:   oc.Normalize,
			}, a.logger)

			results, stats, err := e.ExtractDirectory(cmd.Context(), inDir, outDir, page)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != "" {
					fmt.Fprintf(out, "FAIL %s: %s\n", r.Path, r.Err)
					continue
				}
				fmt.Fprintf(out, "OK   %s -> %s (%d chars)\n", r.Path, r.OutPath, r.Chars)
			}
			fmt.Fprintf(out, "scanned=%d matched=%d succeeded=%d failed=%d\n",
				stats.Scanned, stats.Matched, stats.Succeeded, stats.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&inDir, "input-dir", a.cfg.Paths.PDFDir, "directory with PDF files")
	cmd.Flags().StringVar(&outDir, "output-dir", "output/text", "directory for .txt output")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page to OCR in every file")
	return cmd
}
