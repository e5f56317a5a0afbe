package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oukeidos/lorakit/internal/capture"
)

// Replaced in tests; the real ones need a desktop session.
var (
	newCapturer = func() capture.Capturer { return capture.ScreenCapturer{} }
	runHotkeys  = func(ctx context.Context, l capture.HotkeyListener, svc *capture.Service) error {
		return l.Run(ctx, svc)
	}
)

type shootOptions struct {
	dir        string
	captureKey string
	stopKey    string
}

func newShootCmd() *cobra.Command {
	opts := shootOptions{}
	cmd := &cobra.Command{
		Use:   "shoot",
		Short: "Save a screenshot each time the capture key is pressed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShoot(cmd.OutOrStdout(), &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&opts.dir, "dir", capture.DefaultDir, "Folder screenshots are saved to")
	cmd.Flags().StringVar(&opts.captureKey, "capture-key", capture.DefaultCaptureKey, "Key that takes a screenshot")
	cmd.Flags().StringVar(&opts.stopKey, "stop-key", capture.DefaultStopKey, "Key that stops capturing")
	return cmd
}

func runShoot(out io.Writer, opts *shootOptions) error {
	if _, err := capture.ParseKey(opts.captureKey); err != nil {
		return err
	}
	if _, err := capture.ParseKey(opts.stopKey); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	svc := capture.NewService(opts.dir, newCapturer())
	if err := svc.Start(ctx); err != nil {
		return err
	}
	printed := make(chan int, 1)
	go func() {
		saved := 0
		for st := range svc.Status() {
			switch st.Kind {
			case capture.StatusSaved:
				saved++
				fmt.Fprintln(out, success(st.String()))
			case capture.StatusFailed:
				fmt.Fprintln(out, failure(st.String()))
			case capture.StatusDropped:
				fmt.Fprintln(out, warning(st.String()))
			}
		}
		printed <- saved
	}()

	fmt.Fprintf(out, "Press %s to capture, %s to stop. Saving to %s\n", bold(opts.captureKey), bold(opts.stopKey), opts.dir)
	err := runHotkeys(ctx, capture.HotkeyListener{CaptureKey: opts.captureKey, StopKey: opts.stopKey}, svc)
	svc.Stop()
	saved := <-printed
	fmt.Fprintln(out, faint(fmt.Sprintf("%d screenshot(s) saved", saved)))
	return err
}
