// Package sampler evaluates a curve function on a uniform grid and marks the
// places where the curve must be broken into separate polylines.
package sampler

import (
	"math"

	"grapher/plot/expr"
	"grapher/plot/numeric"
)

// Intervals is the number of steps between xMin and xMax; Sample emits
// Intervals+1 grid points.
const Intervals = 800

// Point is one sample.
//
// Valid is false when evaluation failed or y is NaN/Inf. SegmentEnd marks the
// last good sample before an invalid run; such a point is emitted a second
// time, directly before the invalid sample. SegmentStart marks the first
// sample and the first valid sample after an invalid one.
type Point struct {
	X, Y         float64
	Valid        bool
	SegmentStart bool
	SegmentEnd   bool
}

type tracked struct {
	x, y  float64
	valid bool
}

// Sample evaluates f at Intervals+1 evenly spaced points of [xMin, xMax],
// both ends included, in ascending order.
func Sample(f expr.Func, xMin, xMax float64) []Point {
	step := (xMax - xMin) / Intervals
	if !numeric.IsNotNanOrInf(step) {
		// xMax-xMin overflowed; the bounds themselves are finite.
		step = xMax/Intervals - xMin/Intervals
	}
	out := make([]Point, 0, Intervals+1+8)

	var last *tracked
	closeRun := func() {
		if last != nil && last.valid {
			out = append(out, Point{X: last.x, Y: last.y, Valid: true, SegmentEnd: true})
		}
	}

	for i := 0; i <= Intervals; i++ {
		x := xMin + float64(i)*step
		switch {
		case i == Intervals || x > xMax:
			x = xMax
		case x < xMin:
			x = xMin
		}

		y, err := f(x)
		if err != nil {
			closeRun()
			out = append(out, Point{X: x, Y: math.NaN()})
			last = nil
			continue
		}

		valid := numeric.IsNotNanOrInf(y)
		if !valid {
			closeRun()
		}
		out = append(out, Point{
			X:            x,
			Y:            y,
			Valid:        valid,
			SegmentStart: last == nil || (!last.valid && valid),
		})
		last = &tracked{x: x, y: y, valid: valid}
	}
	return out
}

// Breaks counts the SegmentEnd re-emissions in pts.
func Breaks(pts []Point) int {
	n := 0
	for _, p := range pts {
		if p.SegmentEnd {
			n++
		}
	}
	return n
}

// Segments splits samples into polylines of consecutive valid points whose y
// lies in [yMin, yMax]. A run ends at an invalid or out-of-range sample, at a
// SegmentEnd marker and at the end of input. Runs with fewer than two points
// cannot be stroked and are dropped.
func Segments(pts []Point, yMin, yMax float64) [][]Point {
	var segs [][]Point
	var cur []Point

	flush := func() {
		if len(cur) >= 2 {
			segs = append(segs, cur)
		}
		cur = nil
	}

	for _, p := range pts {
		visible := p.Valid && p.Y >= yMin && p.Y <= yMax
		if visible {
			n := len(cur)
			if n == 0 || cur[n-1].X != p.X || cur[n-1].Y != p.Y {
				cur = append(cur, p)
			}
		}
		if !visible || p.SegmentEnd {
			flush()
		}
	}
	flush()
	return segs
}
