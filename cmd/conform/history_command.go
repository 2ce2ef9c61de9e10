package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"conform/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit int
		path  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent processing outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()

			var records []history.Record
			if path != "" {
				resolved, err := filepath.Abs(path)
				if err != nil {
					return err
				}
				last, err := store.LastForPath(cmd.Context(), resolved)
				if err != nil {
					return err
				}
				if last == nil {
					fmt.Fprintf(out, "No history recorded for %s.\n", resolved)
					return nil
				}
				records = []history.Record{*last}
			} else {
				records, err = store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No history recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				detail := rec.Reason
				if rec.ErrorMessage != "" {
					detail = rec.ErrorMessage
				}
				rows = append(rows, []string{
					rec.CreatedAt.Local().Format(time.DateTime),
					filepath.Base(rec.Path),
					rec.Action,
					rec.Status,
					truncate(detail, 60),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "File", "Action", "Status", "Detail"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	cmd.Flags().StringVar(&path, "path", "", "Show only the most recent entry for this file")
	return cmd
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func summaryRows(summary history.Summary) [][]string {
	return [][]string{
		{"Completed", fmt.Sprintf("%d", summary.Completed)},
		{"Skipped", fmt.Sprintf("%d", summary.Skipped)},
		{"Failed", fmt.Sprintf("%d", summary.Failed)},
		{"Total", fmt.Sprintf("%d", summary.Total)},
	}
}
