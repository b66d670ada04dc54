package points

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"grapher/plot/axis"
	"grapher/plot/expr"
	"grapher/plot/sampler"
)

func compile(t *testing.T, src string) expr.Func {
	t.Helper()
	f, _, err := expr.Compile(src)
	require.NoError(t, err, "Compile(%q)", src)
	return f
}

func TestFor_IdentityLine(t *testing.T) {
	f := compile(t, "y = x")
	v := axis.Viewport{XMin: -5, XMax: 5, YMin: -10, YMax: 10}
	got := For(f, sampler.Sample(f, v.XMin, v.XMax), v)
	require.Equal(t, []Point{{X: -5, Y: -5}, {X: 0, Y: 0}, {X: 5, Y: 5}}, got)
	require.Equal(t, "(-5, -5), (0, 0), (5, 5)", Format(got))
}

func TestFor_HugeViewport(t *testing.T) {
	f := compile(t, "x")
	v := axis.Viewport{XMin: -1.7e308, XMax: 1.7e308, YMin: -1.7e308, YMax: 1.7e308}
	got := For(f, sampler.Sample(f, v.XMin, v.XMax), v)
	require.NotEmpty(t, got)
	for _, p := range got {
		require.True(t, !math.IsNaN(p.X) && !math.IsNaN(p.Y), "point %v", p)
	}
	require.Equal(t, Point{X: -1.7e308, Y: -1.7e308}, got[0])
	require.Equal(t, Point{X: 1.7e308, Y: 1.7e308}, got[len(got)-1])
}

func TestFind_ClipsToRange(t *testing.T) {
	f := compile(t, "x^2")
	got := Find(sampler.Sample(f, -10, 10), -1, 4.01)
	require.Equal(t, []Point{{X: -2, Y: 4}, {X: 2, Y: 4}}, got)
}

func TestFind_NoneVisible(t *testing.T) {
	f := compile(t, "x+100")
	require.Nil(t, Find(sampler.Sample(f, -10, 10), -10, 10))
}

func TestFind_DedupWithinTolerance(t *testing.T) {
	samples := []sampler.Point{
		{X: 1.001, Y: 2.004, Valid: true},
		{X: 1.5, Y: 50, Valid: true},
		{X: 1.004, Y: 1.996, Valid: true},
	}
	require.Equal(t, []Point{{X: 1, Y: 2}}, Find(samples, -10, 10))
}

func TestFind_SkipsInvalid(t *testing.T) {
	samples := []sampler.Point{
		{X: -1, Y: math.NaN()},
		{X: 0, Y: 3, Valid: true},
		{X: 1, Y: math.Inf(1)},
	}
	require.Equal(t, []Point{{X: 0, Y: 3}}, Find(samples, -10, 10))
}

func TestZero(t *testing.T) {
	p, ok := Zero(compile(t, "x^2+1.234"))
	require.True(t, ok)
	require.Equal(t, Point{X: 0, Y: 1.23}, p)

	_, ok = Zero(compile(t, "1/x"))
	require.False(t, ok, "1/x has no value at 0")

	_, ok = Zero(compile(t, "0^(0-1)"))
	require.False(t, ok, "infinite value must be rejected")

	failing := func(float64) (float64, error) { return 0, errors.New("boom") }
	_, ok = Zero(failing)
	require.False(t, ok, "evaluation error must yield no zero point")
}

func TestMerge(t *testing.T) {
	v := axis.Viewport{XMin: -5, XMax: 5, YMin: -10, YMax: 10}
	zero := Point{X: 0, Y: 1}
	one := []Point{{X: -5, Y: 2}}
	two := []Point{{X: -5, Y: 2}, {X: 5, Y: 3}}

	tests := []struct {
		name  string
		found []Point
		zero  Point
		ok    bool
		v     axis.Viewport
		want  []Point
	}{
		{name: "between endpoints", found: two, zero: zero, ok: true, v: v,
			want: []Point{{X: -5, Y: 2}, zero, {X: 5, Y: 3}}},
		{name: "append to one", found: one, zero: zero, ok: true, v: v,
			want: []Point{{X: -5, Y: 2}, zero}},
		{name: "append to none", found: nil, zero: zero, ok: true, v: v,
			want: []Point{zero}},
		{name: "absent", found: one, zero: zero, ok: false, v: v, want: one},
		{name: "y out of range", found: one, zero: Point{Y: 11}, ok: true, v: v, want: one},
		{name: "y on range edge", found: nil, zero: Point{Y: 10}, ok: true, v: v,
			want: []Point{{Y: 10}}},
		{name: "x on domain edge", found: one, zero: zero, ok: true,
			v: axis.Viewport{XMin: 0, XMax: 5, YMin: -10, YMax: 10}, want: one},
	}
	for _, tt := range tests {
		found := append([]Point(nil), tt.found...)
		require.Equal(t, tt.want, Merge(found, tt.zero, tt.ok, tt.v), tt.name)
	}
}

func TestPoint_Label(t *testing.T) {
	p := Point{X: math.Copysign(0, -1), Y: -2.5}
	require.Equal(t, "(0,-2.5)", p.Label())
}
