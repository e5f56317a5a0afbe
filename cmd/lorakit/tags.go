package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/lorakit/internal/tags"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Count and remove caption tags",
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.AddCommand(newTagsListCmd(), newTagsRemoveCmd())
	return cmd
}

func newTagsListCmd() *cobra.Command {
	var filter string
	var limit int
	cmd := &cobra.Command{
		Use:   "list <dir>",
		Short: "List tags by frequency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := tags.Scan(args[0])
			if err != nil {
				return err
			}
			entries := idx.Filter(filter)
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, warning("No tags found."))
				return nil
			}
			total := len(entries)
			if limit > 0 && limit < total {
				entries = entries[:limit]
			}
			fmt.Fprint(out, formatTagTable(entries))
			if len(entries) < total {
				fmt.Fprintln(out, faint(fmt.Sprintf("  ... %d more", total-len(entries))))
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&filter, "filter", "", "Only show tags containing this text")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many tags (0 = all)")
	return cmd
}

func newTagsRemoveCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove <dir> <tag>",
		Short: "Remove a tag from every caption file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := tags.Scan(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			n := idx.Count(args[1])
			if n == 0 {
				fmt.Fprintln(out, warning(fmt.Sprintf("Tag %q not found.", args[1])))
				return nil
			}
			confirmed, err := newConfirmer().ConfirmTagRemoval(args[1], n, yes)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
			report, err := idx.Remove(args[1])
			if err != nil {
				return err
			}
			return printReport(out, "Tag removed", report)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Remove without asking")
	return cmd
}
