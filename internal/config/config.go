// Package config loads grapher settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"grapher/plot/axis"
	"grapher/plot/registry"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Display config.
type Display struct {
	Width  int
	Height int
	Scale  int
}

// Plot config.
type Plot struct {
	Margin      int
	PanelHeight int
}

// Log config.
type Log struct {
	Level  string
	Format string
}

// Headless config.
type Headless struct {
	Hz    int
	Ticks uint64
}

// Config is the resolved configuration.
type Config struct {
	Display   Display
	Plot      Plot
	Viewport  axis.Viewport
	Palette   []color.RGBA
	Functions []string
	Log       Log
	Headless  Headless
	Viper     *viper.Viper
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("display.width", 640)
	v.SetDefault("display.height", 480)
	v.SetDefault("display.scale", 1)
	v.SetDefault("plot.margin", 40)
	v.SetDefault("plot.panel_height", 120)
	v.SetDefault("viewport.x_min", axis.Default.XMin)
	v.SetDefault("viewport.x_max", axis.Default.XMax)
	v.SetDefault("viewport.y_min", axis.Default.YMin)
	v.SetDefault("viewport.y_max", axis.Default.YMax)

	palette := make([]string, len(registry.DefaultPalette))
	for i, c := range registry.DefaultPalette {
		palette[i] = FormatHex(c)
	}
	v.SetDefault("palette", palette)
	v.SetDefault("functions", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("headless.hz", 60)
	v.SetDefault("headless.ticks", 0)
}

// Load reads configuration into v. With an explicit path the file must exist;
// otherwise "config" is searched for in the working directory,
// $HOME/.grapher and /etc/grapher, and a missing file is not an error.
// GRAPHER_* environment variables override file values.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("grapher")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.grapher")
		v.AddConfigPath("/etc/grapher")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	palette, err := parsePalette(v.GetStringSlice("palette"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Display: Display{
			Width:  v.GetInt("display.width"),
			Height: v.GetInt("display.height"),
			Scale:  v.GetInt("display.scale"),
		},
		Plot: Plot{
			Margin:      v.GetInt("plot.margin"),
			PanelHeight: v.GetInt("plot.panel_height"),
		},
		Viewport: axis.Viewport{
			XMin: v.GetFloat64("viewport.x_min"),
			XMax: v.GetFloat64("viewport.x_max"),
			YMin: v.GetFloat64("viewport.y_min"),
			YMax: v.GetFloat64("viewport.y_max"),
		},
		Palette:   palette,
		Functions: v.GetStringSlice("functions"),
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Headless: Headless{
			Hz:    v.GetInt("headless.hz"),
			Ticks: v.GetUint64("headless.ticks"),
		},
		Viper: v,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks sizes, the viewport and the log format.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("%w: display scale %d", ErrInvalid, c.Display.Scale)
	}
	if c.Plot.Margin < 0 || c.Plot.PanelHeight < 0 {
		return fmt.Errorf("%w: negative margin or panel height", ErrInvalid)
	}
	plotH := c.Display.Height - c.Plot.PanelHeight
	if c.Display.Width <= 2*c.Plot.Margin || plotH <= 2*c.Plot.Margin {
		return fmt.Errorf("%w: margin %d leaves no plot area", ErrInvalid, c.Plot.Margin)
	}
	if err := c.Viewport.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalid)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	if c.Headless.Hz <= 0 {
		return fmt.Errorf("%w: headless hz %d", ErrInvalid, c.Headless.Hz)
	}
	return nil
}

func parsePalette(in []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(in))
	for _, s := range in {
		c, err := ParseHex(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseHex parses "#rrggbb" (the '#' is optional).
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF}, nil
}

// FormatHex renders c as "#rrggbb".
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
