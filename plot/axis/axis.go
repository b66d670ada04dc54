// Package axis holds the plot viewport, grid tick placement and the mapping
// from user coordinates to device pixels.
package axis

import (
	"errors"
	"fmt"

	"grapher/plot/numeric"
)

// ErrDomain reports an empty, inverted or non-finite viewport.
var ErrDomain = errors.New("axis: invalid domain")

// Viewport is the visible region in user coordinates.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Default is the initial ±10 square.
var Default = Viewport{XMin: -10, XMax: 10, YMin: -10, YMax: 10}

// Validate requires finite bounds with XMin < XMax and YMin < YMax.
func (v Viewport) Validate() error {
	for _, b := range [...]float64{v.XMin, v.XMax, v.YMin, v.YMax} {
		if !numeric.IsNotNanOrInf(b) {
			return fmt.Errorf("%w: non-finite bound", ErrDomain)
		}
	}
	if v.XMin >= v.XMax {
		return fmt.Errorf("%w: x range [%v, %v]", ErrDomain, v.XMin, v.XMax)
	}
	if v.YMin >= v.YMax {
		return fmt.Errorf("%w: y range [%v, %v]", ErrDomain, v.YMin, v.YMax)
	}
	return nil
}

// CalcStep picks the tick spacing for [min, max]: 1 below a range of 20,
// 5 below 100, 10 otherwise.
func CalcStep(min, max float64) float64 {
	switch r := max - min; {
	case r < 20:
		return 1
	case r < 100:
		return 5
	default:
		return 10
	}
}

// MaxGridLines caps GridValues. Wider ranges get no grid rather than more
// lines than any frame has pixels.
const MaxGridLines = 4096

// GridValues lists the multiples of step inside [min, max], ascending. It
// returns nil when there are none or more than MaxGridLines.
func GridValues(min, max, step float64) []float64 {
	if !(step > 0) || !numeric.IsNotNanOrInf(step) {
		return nil
	}
	first := numeric.Ceil(min/step) * step
	n := numeric.Floor((max-first)/step) + 1
	if !numeric.IsNotNanOrInf(n) || n <= 0 || n > MaxGridLines {
		return nil
	}
	count := int(n)
	out := make([]float64, count)
	for i := range out {
		out[i] = first + float64(i)*step
	}
	return out
}

// XToPixel maps x in [min, max] onto [0, width].
func XToPixel(x, min, max, width float64) float64 {
	return frac(x, min, max) * width
}

// YToPixel maps y in [min, max] onto [height, 0].
func YToPixel(y, min, max, height float64) float64 {
	return height - frac(y, min, max)*height
}

// frac is (v-min)/(max-min), halving first when max-min overflows.
func frac(v, min, max float64) float64 {
	if d := max - min; numeric.IsNotNanOrInf(d) {
		return (v - min) / d
	}
	return (v/2 - min/2) / (max/2 - min/2)
}

// Frame is the device rectangle a viewport is drawn into. Margin is inset on
// all four sides.
type Frame struct {
	Width, Height int
	Margin        int
}

// Inner returns the size of the area inside the margin.
func (f Frame) Inner() (w, h float64) {
	return float64(f.Width - 2*f.Margin), float64(f.Height - 2*f.Margin)
}

// ToDevice maps a user-space point to pixel coordinates inside f.
func (f Frame) ToDevice(v Viewport, x, y float64) (px, py float64) {
	w, h := f.Inner()
	m := float64(f.Margin)
	return m + XToPixel(x, v.XMin, v.XMax, w), m + YToPixel(y, v.YMin, v.YMax, h)
}

// Contains reports whether a device point lies inside the margin box.
func (f Frame) Contains(px, py float64) bool {
	m := float64(f.Margin)
	return px >= m && py >= m && px <= float64(f.Width)-m && py <= float64(f.Height)-m
}
