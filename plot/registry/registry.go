// Package registry owns the list of plotted functions and runs plot passes
// over it.
package registry

import (
	"errors"
	"fmt"
	"image/color"

	"golang.org/x/exp/slices"

	"grapher/plot/axis"
	"grapher/plot/expr"
	"grapher/plot/points"
	"grapher/plot/sampler"
)

// ErrIndex reports an entry index outside the registry.
var ErrIndex = errors.New("registry: index out of range")

// DefaultPalette is the color rotation for new entries.
var DefaultPalette = []color.RGBA{
	{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
	{R: 0x34, G: 0x98, B: 0xdb, A: 0xff},
	{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
	{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff},
	{R: 0x9b, G: 0x59, B: 0xb6, A: 0xff},
	{R: 0x1a, G: 0xbc, B: 0x9c, A: 0xff},
	{R: 0xd3, G: 0x54, B: 0x00, A: 0xff},
	{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff},
}

// Entry is one registered function.
type Entry struct {
	// Expression is the text as the user typed it.
	Expression string
	Normalized expr.Expression
	Func       expr.Func
	Color      color.RGBA
	Enabled    bool
}

// View is the read-only projection of an entry handed to list renderers.
type View struct {
	Index      int
	Expression string
	Color      color.RGBA
	Enabled    bool
}

// Registry is an ordered collection of entries. It is not safe for concurrent
// use.
type Registry struct {
	palette []color.RGBA
	entries []Entry
}

// New returns an empty registry. A nil or empty palette selects
// DefaultPalette.
func New(palette []color.RGBA) *Registry {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Registry{palette: slices.Clone(palette)}
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Entry returns entry i.
func (r *Registry) Entry(i int) (Entry, error) {
	if err := r.check(i); err != nil {
		return Entry{}, err
	}
	return r.entries[i], nil
}

// Views projects all entries in order.
func (r *Registry) Views() []View {
	out := make([]View, len(r.entries))
	for i, e := range r.entries {
		out[i] = View{Index: i, Expression: e.Expression, Color: e.Color, Enabled: e.Enabled}
	}
	return out
}

// Add validates text and appends an enabled entry. The color is chosen by the
// current length, so colors rotate and may repeat after removals. On error the
// registry is unchanged.
func (r *Registry) Add(text string) ([]View, error) {
	f, norm, err := expr.Compile(text)
	if err != nil {
		return r.Views(), err
	}
	r.entries = append(r.entries, Entry{
		Expression: text,
		Normalized: norm,
		Func:       f,
		Color:      r.palette[len(r.entries)%len(r.palette)],
		Enabled:    true,
	})
	return r.Views(), nil
}

// Remove deletes entry i.
func (r *Registry) Remove(i int) ([]View, error) {
	if err := r.check(i); err != nil {
		return r.Views(), err
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	return r.Views(), nil
}

// Toggle sets whether entry i takes part in plot passes.
func (r *Registry) Toggle(i int, enabled bool) ([]View, error) {
	if err := r.check(i); err != nil {
		return r.Views(), err
	}
	r.entries[i].Enabled = enabled
	return r.Views(), nil
}

func (r *Registry) check(i int) error {
	if i < 0 || i >= len(r.entries) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndex, i, len(r.entries))
	}
	return nil
}

// Curve is the plot output for one enabled entry.
type Curve struct {
	Index      int
	Expression string
	Color      color.RGBA
	Samples    []sampler.Point
	Segments   [][]sampler.Point
	Points     []points.Point
}

// Result is one complete plot pass.
type Result struct {
	Viewport axis.Viewport
	Curves   []Curve
}

// Annotation pairs an expression with its significant points.
type Annotation struct {
	Expression string
	Points     []points.Point
}

// SignificantPoints lists the significant points of every curve in order.
func (res *Result) SignificantPoints() []Annotation {
	out := make([]Annotation, len(res.Curves))
	for i, c := range res.Curves {
		out[i] = Annotation{Expression: c.Expression, Points: c.Points}
	}
	return out
}

// Plot samples every enabled entry over v. An invalid viewport aborts the pass
// before any sampling. Evaluation failures never abort; they become invalid
// samples.
func (r *Registry) Plot(v axis.Viewport) (*Result, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	res := &Result{Viewport: v}
	for i, e := range r.entries {
		if !e.Enabled {
			continue
		}
		samples := sampler.Sample(e.Func, v.XMin, v.XMax)
		res.Curves = append(res.Curves, Curve{
			Index:      i,
			Expression: e.Expression,
			Color:      e.Color,
			Samples:    samples,
			Segments:   sampler.Segments(samples, v.YMin, v.YMax),
			Points:     points.For(e.Func, samples, v),
		})
	}
	return res, nil
}
