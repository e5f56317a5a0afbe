package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oukeidos/lorakit/internal/labeler"
)

func newLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Show and edit the caption of each image",
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.AddCommand(newLabelListCmd(), newLabelShowCmd(), newLabelSetCmd(), newLabelAppendCmd())
	return cmd
}

func newLabelListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <dir>",
		Short: "List image/caption pairs with a caption preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := labeler.Open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if s.Empty() {
				fmt.Fprintln(out, warning("No images found."))
				return nil
			}
			for i := range s.Pairs() {
				if err := s.Seek(i); err != nil {
					return err
				}
				pair, draft, _ := s.Current()
				fmt.Fprintf(out, "%s  %s  %s\n", faint(fmt.Sprintf("%4d", i)), cyan(filepath.Base(pair.ImagePath)), preview(draft, 60))
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

// openAt opens dir and moves to the pair at the index argument.
func openAt(dir, index string) (*labeler.Session, error) {
	i, err := parseIndex(index)
	if err != nil {
		return nil, err
	}
	s, err := labeler.Open(dir)
	if err != nil {
		return nil, err
	}
	if err := s.Seek(i); err != nil {
		return nil, err
	}
	return s, nil
}

func newLabelShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <dir> <index>",
		Short: "Print the caption of one image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openAt(args[0], args[1])
			if err != nil {
				return err
			}
			pair, draft, _ := s.Current()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", faint("Image:"), pair.ImagePath)
			fmt.Fprintf(out, "%s %s\n", faint("Caption:"), pair.CaptionPath)
			fmt.Fprintln(out, draft)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newLabelSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <dir> <index> <text>",
		Short: "Replace the caption of one image",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openAt(args[0], args[1])
			if err != nil {
				return err
			}
			s.SetDraft(args[2])
			if err := s.Save(); err != nil {
				return err
			}
			pair, _, _ := s.Current()
			fmt.Fprintln(cmd.OutOrStdout(), success("Caption saved to "+pair.CaptionPath))
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newLabelAppendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append <dir> <index> <text>",
		Short: "Append text to the caption of one image",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openAt(args[0], args[1])
			if err != nil {
				return err
			}
			if err := s.Append(args[2]); err != nil {
				return err
			}
			pair, _, _ := s.Current()
			fmt.Fprintln(cmd.OutOrStdout(), success("Caption updated: "+pair.CaptionPath))
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
