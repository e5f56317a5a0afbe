package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/lorakit/internal/cropper"
)

type cropOptions struct {
	rect   string
	flip   bool
	outDir string
}

func newCropCmd() *cobra.Command {
	opts := cropOptions{}
	cmd := &cobra.Command{
		Use:   "crop <image>",
		Short: "Crop one image to a rectangle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rect, err := cropper.ParseRect(opts.rect)
			if err != nil {
				return err
			}
			res, err := cropper.CropFile(args[0], opts.outDir, rect, opts.flip)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(fmt.Sprintf("Saved %s (%dx%d)", res.Path, res.Width, res.Height)))
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&opts.rect, "rect", "", "Crop rectangle in image pixels: x0,y0,x1,y1")
	cmd.Flags().BoolVar(&opts.flip, "flip", false, "Mirror the crop horizontally and prefix the name with flipped_")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output folder (created if missing)")
	_ = cmd.MarkFlagRequired("rect")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newCropFullCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "crop-full <image>",
		Short: "Copy a whole image into the output folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cropper.CopyFile(args[0], outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(fmt.Sprintf("Saved %s (%dx%d)", res.Path, res.Width, res.Height)))
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output folder (created if missing)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
