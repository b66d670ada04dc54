package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"grapher/internal/config"
	"grapher/plot/registry"
)

type evalViewport struct {
	XMin float64 `json:"x_min" yaml:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max"`
	YMin float64 `json:"y_min" yaml:"y_min"`
	YMax float64 `json:"y_max" yaml:"y_max"`
}

type evalPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// evalSample carries a nil Y where the function is undefined.
type evalSample struct {
	X float64  `json:"x" yaml:"x"`
	Y *float64 `json:"y" yaml:"y"`
}

type evalCurve struct {
	Expression string       `json:"expression" yaml:"expression"`
	Color      string       `json:"color" yaml:"color"`
	Segments   int          `json:"segments" yaml:"segments"`
	Points     []evalPoint  `json:"points" yaml:"points"`
	Samples    []evalSample `json:"samples,omitempty" yaml:"samples,omitempty"`
}

type evalOutput struct {
	Viewport evalViewport `json:"viewport" yaml:"viewport"`
	Curves   []evalCurve  `json:"curves" yaml:"curves"`
}

func newEvalCommand(o *options) *cobra.Command {
	var (
		withSamples bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Print the significant points of each function",
		Example: `  grapher eval "y = x^2" "2*x + 1"
  grapher eval --x-min -2 --x-max 2 --samples -o yaml "x^3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New(o.cfg.Palette)
			for _, a := range args {
				if _, err := reg.Add(a); err != nil {
					return fmt.Errorf("%q: %w", a, err)
				}
			}
			res, err := reg.Plot(o.cfg.Viewport)
			if err != nil {
				return err
			}
			return writeEval(cmd.OutOrStdout(), format, buildEval(res, withSamples))
		},
	}
	cmd.Flags().BoolVar(&withSamples, "samples", false, "include every sample")
	cmd.Flags().StringVarP(&format, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func buildEval(res *registry.Result, withSamples bool) evalOutput {
	v := res.Viewport
	out := evalOutput{
		Viewport: evalViewport{XMin: v.XMin, XMax: v.XMax, YMin: v.YMin, YMax: v.YMax},
		Curves:   make([]evalCurve, 0, len(res.Curves)),
	}
	for _, c := range res.Curves {
		ec := evalCurve{
			Expression: c.Expression,
			Color:      config.FormatHex(c.Color),
			Segments:   len(c.Segments),
			Points:     make([]evalPoint, 0, len(c.Points)),
		}
		for _, p := range c.Points {
			ec.Points = append(ec.Points, evalPoint{X: p.X, Y: p.Y})
		}
		if withSamples {
			ec.Samples = make([]evalSample, 0, len(c.Samples))
			for _, s := range c.Samples {
				es := evalSample{X: s.X}
				if s.Valid {
					y := s.Y
					es.Y = &y
				}
				ec.Samples = append(ec.Samples, es)
			}
		}
		out.Curves = append(out.Curves, ec)
	}
	return out
}

func writeEval(w io.Writer, format string, out evalOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
