package main

import (
	"github.com/spf13/cobra"

	"github.com/oukeidos/lorakit/internal/tags"
)

func newDedupeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe <dir>",
		Short: "Remove repeated tags from every caption file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := tags.DedupeFolder(args[0])
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), "Duplicates removed", report)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
