package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"conform/internal/classify"
	"conform/internal/language"
	"conform/internal/media"
	"conform/internal/plan"
	"conform/internal/profile"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show classification and planned commands for a file without touching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			desc, err := media.Probe(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}

			pol := profile.FromConfig(cfg)
			decision := classify.Classify(desc, pol)
			commands, err := plan.Build(desc, decision, pol)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:     %s\n", desc.Path)
			fmt.Fprintf(out, "Media:    %s\n", desc.Summary())
			fmt.Fprintf(out, "Tier:     %s (%s video)\n", profile.TierName(desc.Width, desc.Height), pol.VideoBitrateFor(desc.Width, desc.Height))
			fmt.Fprintf(out, "Action:   %s\n", decision.Action)
			fmt.Fprintf(out, "Reason:   %s\n", decision.Reason)

			if len(desc.AudioStreams) > 0 {
				rows := make([][]string, 0, len(desc.AudioStreams))
				for _, stream := range desc.AudioStreams {
					rows = append(rows, []string{
						strconv.Itoa(stream.Index),
						stream.Codec,
						strconv.Itoa(stream.Channels),
						fmt.Sprintf("%s (%s)", language.Display(stream.Language), stream.Language),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Stream", "Codec", "Channels", "Language"},
					rows,
					0, 2,
				))
			}

			if len(commands) == 0 {
				fmt.Fprintln(out, "No work needed.")
				return nil
			}
			fmt.Fprintln(out, "Planned invocations:")
			for _, command := range commands {
				fmt.Fprintf(out, "  %s %s\n", cfg.FFmpegBinary(), strings.Join(command.Args, " "))
			}
			return nil
		},
	}
}
