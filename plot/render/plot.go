package render

import (
	"image/color"

	"grapher/plot/axis"
	"grapher/plot/registry"
	"grapher/plot/sampler"
)

var (
	White     = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	GridColor = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	AxisColor = color.RGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}
)

const (
	gridWidth   = 1
	axisWidth   = 2
	curveWidth  = 3
	markerR     = 6
	markerRing  = 2
	labelOffset = 15
)

// Plotter paints plot results into a frame anchored at the display origin.
type Plotter struct {
	Frame axis.Frame
	Font  Font
}

// Draw clears the frame to white and paints grid and axes, then each curve
// followed by its significant-point markers.
func (p Plotter) Draw(d Canvas, res *registry.Result) {
	f := p.Frame
	_ = d.FillRectangle(0, 0, int16(f.Width), int16(f.Height), White)
	if res == nil {
		return
	}
	v := res.Viewport
	p.grid(d, v)
	p.axes(d, v)
	for _, c := range res.Curves {
		p.curve(d, v, c)
		p.markers(d, v, c)
	}
}

// grid skips a direction whose lines would outnumber the pixels they span.
func (p Plotter) grid(d Canvas, v axis.Viewport) {
	f := p.Frame
	m := int16(f.Margin)
	iw, ih := f.Inner()
	xs := axis.GridValues(v.XMin, v.XMax, axis.CalcStep(v.XMin, v.XMax))
	if float64(len(xs)) > iw {
		xs = nil
	}
	ys := axis.GridValues(v.YMin, v.YMax, axis.CalcStep(v.YMin, v.YMax))
	if float64(len(ys)) > ih {
		ys = nil
	}
	for _, gx := range xs {
		px, _ := f.ToDevice(v, gx, v.YMin)
		x := roundInt16(px)
		Line(d, x, m, x, int16(f.Height)-m, gridWidth, GridColor)
	}
	for _, gy := range ys {
		_, py := f.ToDevice(v, v.XMin, gy)
		y := roundInt16(py)
		Line(d, m, y, int16(f.Width)-m, y, gridWidth, GridColor)
	}
}

func (p Plotter) axes(d Canvas, v axis.Viewport) {
	f := p.Frame
	m := float64(f.Margin)
	px, py := f.ToDevice(v, 0, 0)
	if px >= m && px <= float64(f.Width)-m {
		x := roundInt16(px)
		Line(d, x, int16(f.Margin), x, int16(f.Height-f.Margin), axisWidth, AxisColor)
	}
	if py >= m && py <= float64(f.Height)-m {
		y := roundInt16(py)
		Line(d, int16(f.Margin), y, int16(f.Width-f.Margin), y, axisWidth, AxisColor)
	}
}

// DevicePath maps one segment to device coordinates.
func (p Plotter) DevicePath(v axis.Viewport, seg []sampler.Point) [][2]float64 {
	out := make([][2]float64, len(seg))
	for i, s := range seg {
		x, y := p.Frame.ToDevice(v, s.X, s.Y)
		out[i] = [2]float64{x, y}
	}
	return out
}

func (p Plotter) curve(d Canvas, v axis.Viewport, c registry.Curve) {
	for _, seg := range c.Segments {
		Polyline(d, p.DevicePath(v, seg), curveWidth, c.Color)
	}
}

func (p Plotter) markers(d Canvas, v axis.Viewport, c registry.Curve) {
	f := p.Frame
	for _, pt := range c.Points {
		px, py := f.ToDevice(v, pt.X, pt.Y)
		if px > float64(f.Width-f.Margin) || py > float64(f.Height-f.Margin) {
			continue
		}
		Marker(d, px, py, markerR, markerRing, c.Color)
		if p.Font.Face != nil {
			TextCentered(d, p.Font, roundInt16(px), roundInt16(py)-labelOffset, pt.Label(), AxisColor)
		}
	}
}
