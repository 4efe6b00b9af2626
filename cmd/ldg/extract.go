package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ldg/internal/common"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		ef   engineFlags
		pdf  string
		page int
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the extracted text of one PDF page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := common.WithTimeout(cmd.Context(), a.cfg.OCR.Timeout)
			defer cancel()

			extractor, cleanup, err := a.buildExtractor(ctx, ef)
			if err != nil {
				return err
			}
			defer cleanup()

			text, err := extractor.Extract(ctx, pdf, page)
			if err != nil {
				return err
			}
			if text == "" {
				a.logger.Warn("extract.empty", "pdf", pdf, "page", page, "engine", extractor.Name())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	ef.register(cmd)
	cmd.Flags().StringVar(&pdf, "pdf", "", "PDF file to read")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number (ignored by docai)")
	_ = cmd.MarkFlagRequired("pdf")
	return cmd
}
