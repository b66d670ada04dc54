// Package points extracts the few samples worth labelling on a plot: the first
// and last visible samples and the value at x = 0.
package points

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"grapher/plot/axis"
	"grapher/plot/expr"
	"grapher/plot/numeric"
	"grapher/plot/sampler"
)

const (
	// MaxPoints caps the significant points reported per function.
	MaxPoints = 5
	// Tolerance is the per-axis distance under which two points are the same.
	Tolerance = 0.01
)

// Point is a significant point rounded to two decimals.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return "(" + formatCoord(p.X) + ", " + formatCoord(p.Y) + ")"
}

// Label is the compact form drawn next to a marker.
func (p Point) Label() string {
	return "(" + formatCoord(p.X) + "," + formatCoord(p.Y) + ")"
}

func formatCoord(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func near(a, b Point) bool {
	return numeric.Abs(a.X-b.X) < Tolerance && numeric.Abs(a.Y-b.Y) < Tolerance
}

func round(p sampler.Point) Point {
	return Point{X: numeric.Round2(p.X), Y: numeric.Round2(p.Y)}
}

// Find returns the first and last valid samples with y in [yMin, yMax],
// rounded and deduplicated. It returns nil when no sample is visible.
func Find(samples []sampler.Point, yMin, yMax float64) []Point {
	first, last := -1, -1
	for i, p := range samples {
		if !p.Valid || p.Y < yMin || p.Y > yMax {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return nil
	}

	candidates := []Point{round(samples[first]), round(samples[last])}
	unique := make([]Point, 0, len(candidates))
	for _, c := range candidates {
		if !slices.ContainsFunc(unique, func(u Point) bool { return near(u, c) }) {
			unique = append(unique, c)
		}
	}
	if len(unique) > MaxPoints {
		unique = unique[:MaxPoints]
	}
	return unique
}

// Zero evaluates f at x = 0. ok is false when evaluation fails or the value is
// NaN or infinite.
func Zero(f expr.Func) (p Point, ok bool) {
	y, err := f(0)
	if err != nil || !numeric.IsNotNanOrInf(y) {
		return Point{}, false
	}
	return Point{X: 0, Y: numeric.Round2(y)}, true
}

// Merge adds the zero point to found when it lies strictly inside the x
// domain and inside the closed y range. With two or more points it goes
// between the first and the second; otherwise it is appended.
func Merge(found []Point, zero Point, ok bool, v axis.Viewport) []Point {
	if !ok || !numeric.IsNotNanOrInf(zero.X) || !numeric.IsNotNanOrInf(zero.Y) {
		return found
	}
	if zero.X <= v.XMin || zero.X >= v.XMax || zero.Y < v.YMin || zero.Y > v.YMax {
		return found
	}
	if len(found) >= 2 {
		return slices.Insert(found, 1, zero)
	}
	return append(found, zero)
}

// For runs the full extraction for one function.
func For(f expr.Func, samples []sampler.Point, v axis.Viewport) []Point {
	found := Find(samples, v.YMin, v.YMax)
	zero, ok := Zero(f)
	return Merge(found, zero, ok, v)
}

// Format renders points as "(x, y), (x, y)".
func Format(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
