package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"studentadmin/journal"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded batch deletes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cfg.JournalPath == "" {
				return errors.New("STUDENTCTL_JOURNAL is not set")
			}

			reports, err := journal.New(cfg.JournalPath).ReadAll()
			if err != nil {
				return err
			}
			if limit > 0 && len(reports) > limit {
				reports = reports[len(reports)-limit:]
			}

			out := cmd.OutOrStdout()
			if len(reports) == 0 {
				fmt.Fprintln(out, "no batches recorded")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STARTED\tBATCH\tDELETED\tSTATUS")
			for _, r := range reports {
				status := "ok"
				if !r.OK {
					status = "partial"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n",
					r.StartedAt.Format(time.RFC3339), r.BatchID, r.Count-len(r.Failed()), r.Count, status)
				for _, f := range r.Failed() {
					fmt.Fprintf(tw, "\t  %s\t\t%s\n", f.StudentID, f.Message)
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the last n batches")
	return cmd
}
