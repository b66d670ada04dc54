package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"grapher/app"
	"grapher/hal"
)

func newRunCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the plotter window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return hal.RunWindow(o.halOptions(), app.Factory(o.cfg, nil))
		},
	}
}

func newHeadlessCommand(o *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the plotter without a window",
		Long: "Run the plotter on an in-memory framebuffer at the configured tick rate.\n" +
			"With --ticks the run stops by itself; --output saves the final frame as PNG.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hc := hal.HeadlessConfig{
				Hz:    o.cfg.Headless.Hz,
				Ticks: o.cfg.Headless.Ticks,
				Log:   cmd.OutOrStdout(),
			}
			if output != "" {
				hc.Done = func(h hal.HAL) error {
					return hal.SavePNG(output, h.Display().Framebuffer())
				}
			}
			err := hal.RunHeadless(ctx, o.halOptions(), app.Factory(o.cfg, nil), hc)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	f := cmd.Flags()
	f.Int("hz", 60, "tick rate")
	f.Uint64("ticks", 0, "stop after N ticks (0 = run until interrupted)")
	f.StringVarP(&output, "output", "o", "", "write the final frame to this PNG file")
	_ = o.v.BindPFlag("headless.hz", f.Lookup("hz"))
	_ = o.v.BindPFlag("headless.ticks", f.Lookup("ticks"))
	return cmd
}
