package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/lorakit/internal/version"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show a short description and link",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, bold("lorakit")+" prepares image datasets for LoRA training:")
			fmt.Fprintln(out, "crop, rename, caption, screenshot and tag cleanup in one place.")
			fmt.Fprintln(out, "https://github.com/oukeidos/lorakit")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
