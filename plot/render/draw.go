package render

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Canvas is the surface the plot painter needs.
type Canvas interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Font is a tinyfont face plus the cell metrics used to lay out lines.
type Font struct {
	Face   tinyfont.Fonter
	Width  int16
	Height int16
	Offset int16
}

// DefaultFont is ProggyTiny, a small monospaced face.
func DefaultFont() Font {
	f := &proggy.TinySZ8pt7b
	_, w := tinyfont.LineWidth(f, "0")
	return Font{Face: f, Width: int16(w), Height: 12, Offset: 9}
}

func roundInt16(v float64) int16 {
	if v < 0 {
		return int16(v - 0.5)
	}
	return int16(v + 0.5)
}

// dot paints a width x width square centered on (x, y).
func dot(d Canvas, x, y, width int16, c color.RGBA) {
	if width <= 1 {
		d.SetPixel(x, y, c)
		return
	}
	half := width / 2
	_ = d.FillRectangle(x-half, y-half, width, width, c)
}

// Line draws a Bresenham line with a square pen of the given width.
func Line(d Canvas, x0, y0, x1, y1, width int16, c color.RGBA) {
	dx := int(math.Abs(float64(int(x1) - int(x0))))
	dy := -int(math.Abs(float64(int(y1) - int(y0))))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		dot(d, x0, y0, width, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += int16(sx)
		}
		if e2 <= dx {
			err += dx
			y0 += int16(sy)
		}
	}
}

// Polyline strokes consecutive device points. Fewer than two points draw
// nothing.
func Polyline(d Canvas, pts [][2]float64, width int16, c color.RGBA) {
	for i := 1; i < len(pts); i++ {
		Line(d,
			roundInt16(pts[i-1][0]), roundInt16(pts[i-1][1]),
			roundInt16(pts[i][0]), roundInt16(pts[i][1]),
			width, c)
	}
}

// Marker fills a disc of radius r in fill and rings it with a white outline
// of width ring centered on the edge.
func Marker(d Canvas, cx, cy float64, r, ring int16, fill color.RGBA) {
	inner := float64(r) - float64(ring)/2
	outer := float64(r) + float64(ring)/2
	x0, y0 := roundInt16(cx), roundInt16(cy)
	lim := int16(math.Ceil(outer))
	for dy := -lim; dy <= lim; dy++ {
		for dx := -lim; dx <= lim; dx++ {
			dist := math.Hypot(float64(x0+dx)-cx, float64(y0+dy)-cy)
			switch {
			case dist <= inner:
				d.SetPixel(x0+dx, y0+dy, fill)
			case dist <= outer:
				d.SetPixel(x0+dx, y0+dy, White)
			}
		}
	}
}

// TextCentered draws s with its horizontal center at x and its baseline at y.
func TextCentered(d drivers.Displayer, f Font, x, y int16, s string, c color.RGBA) {
	_, w := tinyfont.LineWidth(f.Face, s)
	tinyfont.WriteLine(d, f.Face, x-int16(w)/2, y, s, c)
}

// Text draws s left-aligned in a cell whose top-left corner is (x, y), cut at
// cols characters.
func Text(d drivers.Displayer, f Font, x, y int16, s string, c color.RGBA, cols int) {
	col := 0
	for _, r := range s {
		if cols > 0 && col >= cols {
			return
		}
		tinyfont.DrawChar(d, f.Face, x+int16(col)*f.Width, y+f.Offset, r, c)
		col++
	}
}
