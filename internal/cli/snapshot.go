package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"grapher/app"
	"grapher/hal"
)

func newSnapshotCommand(o *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Plot the configured functions once and save the frame as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := o.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			h := hal.New(o.halOptions())
			a := app.New(h, o.cfg, log)
			if err := a.Step(); err != nil {
				return err
			}
			if err := hal.SavePNG(output, h.Display().Framebuffer()); err != nil {
				return fmt.Errorf("failed to save snapshot: %w", err)
			}
			log.WithField("path", output).Info("snapshot written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "grapher.png", "PNG file to write")
	return cmd
}
