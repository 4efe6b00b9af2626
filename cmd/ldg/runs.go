package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ldg/internal/common"
	"github.com/joseph-ayodele/ldg/internal/repository"
)

func newRunsCmd(a *app) *cobra.Command {
	var (
		limit int
		runID string
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent validation runs (requires LDG_DB_URL)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Database.DSN == "" {
				return common.InvalidArgumentErrorf("run history is disabled: set LDG_DB_URL")
			}
			ctx := cmd.Context()
			db, err := repository.Open(ctx, repository.Config{DSN: a.cfg.Database.DSN, DialTimeout: a.cfg.Database.DialTimeout}, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()
			repo := repository.NewRunRepository(db, a.logger)
			out := cmd.OutOrStdout()

			if runID != "" {
				id, err := uuid.Parse(runID)
				if err != nil {
					return common.InvalidArgumentErrorf("invalid run id %q", runID)
				}
				ms, err := repo.Mismatches(ctx, id)
				if err != nil {
					return err
				}
				printMismatches(out, ms)
				return nil
			}

			runs, err := repo.List(ctx, limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tEXTRACTOR\tSTATUS\tROWS\tMISMATCHES")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
					r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Extractor, r.Status, r.TotalRows, r.Mismatches)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	cmd.Flags().StringVar(&runID, "mismatches", "", "print the stored mismatches of this run ID")
	return cmd
}
