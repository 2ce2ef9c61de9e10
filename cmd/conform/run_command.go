package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"conform/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the library once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			manager := workflow.NewManager(cfg, store, logger)
			stats, err := manager.RunCycle(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Scanned", "Completed", "Skipped", "Failed", "Elapsed"},
				[][]string{{
					strconv.Itoa(stats.Scanned),
					strconv.Itoa(stats.Completed),
					strconv.Itoa(stats.Skipped),
					strconv.Itoa(stats.Failed),
					stats.Elapsed.Round(10 * time.Millisecond).String(),
				}},
				0, 1, 2, 3, 4,
			))
			if stats.Failed > 0 {
				return fmt.Errorf("%d file(s) failed; see `conform history` for details", stats.Failed)
			}
			return nil
		},
	}
}
