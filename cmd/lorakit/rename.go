package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/files"
	"github.com/oukeidos/lorakit/internal/renamer"
)

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Replace phrases in captions or renumber files",
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.AddCommand(newRenameReplaceCmd(), newRenameCounterCmd(), newRenameUndoCmd())
	return cmd
}

func newRenameReplaceCmd() *cobra.Command {
	var oldPhrase, newPhrase string
	cmd := &cobra.Command{
		Use:   "replace <dir>",
		Short: "Replace a phrase in every caption file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := renamer.ReplacePhrase(args[0], oldPhrase, newPhrase)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), "Phrase replaced", report)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&oldPhrase, "old", "", "Phrase to replace")
	cmd.Flags().StringVar(&newPhrase, "new", "", "Replacement phrase")
	return cmd
}

type counterOptions struct {
	dryRun   bool
	manifest string
	yes      bool
}

func newRenameCounterCmd() *cobra.Command {
	opts := counterOptions{}
	cmd := &cobra.Command{
		Use:   "counter <dir>",
		Short: "Rename files to 000, 001, ... keeping same-named files together",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenameCounter(cmd, args[0], &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the plan without renaming")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "Write the rename plan as YAML to this path")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Rename without asking")
	return cmd
}

func runRenameCounter(cmd *cobra.Command, dir string, opts *counterOptions) error {
	out := cmd.OutOrStdout()
	plan, err := renamer.PlanCounter(dir)
	if err != nil {
		return err
	}
	if opts.dryRun {
		printPlan(out, plan)
	}
	if opts.manifest != "" {
		if err := writeManifest(opts.manifest, plan); err != nil {
			return err
		}
		fmt.Fprintln(out, success("Manifest written to "+opts.manifest))
	}
	if opts.dryRun {
		return nil
	}

	pending := plan.Pending()
	if pending == 0 {
		fmt.Fprintln(out, warning("Nothing to rename."))
		return nil
	}
	confirmed, err := newConfirmer().ConfirmRename(dir, pending, opts.yes)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}
	return printReport(out, "Files renamed", renamer.ApplyCounter(plan))
}

func printPlan(w io.Writer, plan renamer.Plan) {
	width := 0
	for _, it := range plan.Items {
		if n := len(it.OldName); n > width {
			width = n
		}
	}
	for _, it := range plan.Items {
		if it.Unchanged() {
			fmt.Fprintf(w, "  %s  %s\n", padRight(it.OldName, width), faint("(unchanged)"))
			continue
		}
		fmt.Fprintf(w, "  %s  -> %s\n", padRight(it.OldName, width), cyan(it.NewName))
	}
}

func writeManifest(path string, plan renamer.Plan) error {
	var buf bytes.Buffer
	if err := renamer.WriteManifest(&buf, plan); err != nil {
		return apperrors.Filesystem("encode", path, err)
	}
	if err := files.AtomicWrite(path, buf.Bytes(), 0644); err != nil {
		return apperrors.Filesystem("write", path, err)
	}
	return nil
}

func newRenameUndoCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "undo <manifest.yaml>",
		Short: "Restore the names recorded in a counter rename manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return apperrors.Filesystem("open", args[0], err)
			}
			plan, err := renamer.ReadManifest(f)
			f.Close()
			if err != nil {
				return apperrors.Newf(apperrors.KindValidation, err, "Invalid manifest: %s", args[0])
			}
			undo := plan.Invert()
			confirmed, err := newConfirmer().ConfirmRename(undo.Dir, undo.Pending(), yes)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			return printReport(cmd.OutOrStdout(), "Names restored", renamer.ApplyCounter(undo))
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Rename without asking")
	return cmd
}
