// Package cli is the grapher command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"grapher/hal"
	"grapher/internal/config"
	"grapher/internal/logging"
)

type options struct {
	configPath string
	v          *viper.Viper
	cfg        *config.Config
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"width":      "display.width",
	"height":     "display.height",
	"scale":      "display.scale",
	"margin":     "plot.margin",
	"x-min":      "viewport.x_min",
	"x-max":      "viewport.x_max",
	"y-min":      "viewport.y_min",
	"y-max":      "viewport.y_max",
	"function":   "functions",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	o := &options{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "grapher",
		Short:         "Plot single-variable functions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.v, o.configPath)
			if err != nil {
				return err
			}
			o.cfg = cfg
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", "", "config file (default: search ., $HOME/.grapher, /etc/grapher)")
	pf.Int("width", 640, "framebuffer width in pixels")
	pf.Int("height", 480, "framebuffer height in pixels")
	pf.Int("scale", 1, "window scale factor")
	pf.Int("margin", 40, "plot margin in pixels")
	pf.Float64("x-min", -10, "viewport left bound")
	pf.Float64("x-max", 10, "viewport right bound")
	pf.Float64("y-min", -10, "viewport bottom bound")
	pf.Float64("y-max", 10, "viewport top bound")
	pf.StringArrayP("function", "f", nil, "function to add at startup (repeatable)")
	pf.String("log-level", "info", "log level")
	pf.String("log-format", "text", "log format: text or json")
	for name, key := range flagKeys {
		if err := o.v.BindPFlag(key, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	rootCmd.AddCommand(
		newRunCommand(o),
		newHeadlessCommand(o),
		newSnapshotCommand(o),
		newEvalCommand(o),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "grapher:", err)
		os.Exit(1)
	}
}

func (o *options) halOptions() hal.Options {
	return hal.Options{
		Width:  o.cfg.Display.Width,
		Height: o.cfg.Display.Height,
		Scale:  o.cfg.Display.Scale,
		Title:  "Grapher",
	}
}

// logger writes to w with the configured level and format.
func (o *options) logger(w io.Writer) (*logrus.Logger, error) {
	return logging.New(logging.Config{Level: o.cfg.Log.Level, Format: o.cfg.Log.Format}, w)
}
