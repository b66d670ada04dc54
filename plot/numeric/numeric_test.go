package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "0", want: 0},
		{in: "42", want: 42},
		{in: "3.25", want: 3.25},
		{in: "-3.25", want: -3.25},
		{in: "-0.5", want: -0.5},
		{in: ".5", want: 0.5},
		{in: "5.", want: 5},
		{in: "007", want: 7},
		{in: "-12", want: -12},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseFloat(tt.in), "ParseFloat(%q)", tt.in)
	}
}

func TestParseFloat_Malformed(t *testing.T) {
	for _, in := range []string{"", "-", ".", "1.2.3", "1e5", "+1", "abc", "1 2", "--1", "0x10"} {
		require.True(t, math.IsNaN(ParseFloat(in)), "ParseFloat(%q) must be NaN", in)
	}
}

func TestRounding(t *testing.T) {
	tests := []struct {
		in                 float64
		trunc, floor, ceil float64
		round              float64
	}{
		{in: 2.5, trunc: 2, floor: 2, ceil: 3, round: 3},
		{in: -2.5, trunc: -2, floor: -3, ceil: -2, round: -3},
		{in: 2.4, trunc: 2, floor: 2, ceil: 3, round: 2},
		{in: -2.4, trunc: -2, floor: -3, ceil: -2, round: -2},
		{in: -2.6, trunc: -2, floor: -3, ceil: -2, round: -3},
		{in: 7, trunc: 7, floor: 7, ceil: 7, round: 7},
		{in: -7, trunc: -7, floor: -7, ceil: -7, round: -7},
		{in: 0.5, trunc: 0, floor: 0, ceil: 1, round: 1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.trunc, Trunc(tt.in), "Trunc(%v)", tt.in)
		require.Equal(t, tt.floor, Floor(tt.in), "Floor(%v)", tt.in)
		require.Equal(t, tt.ceil, Ceil(tt.in), "Ceil(%v)", tt.in)
		require.Equal(t, tt.round, Round(tt.in), "Round(%v)", tt.in)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{in: 1.234, want: 1.23},
		{in: 1.236, want: 1.24},
		{in: -1.236, want: -1.24},
		{in: 4.999, want: 5},
		{in: 0, want: 0},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.want, Round2(tt.in), 1e-12, "Round2(%v)", tt.in)
	}
}

func TestRound2_Large(t *testing.T) {
	for _, v := range []float64{1.7e308, -1.7e308, math.MaxFloat64} {
		require.Equal(t, v, Round2(v), "Round2(%v)", v)
	}
}

func TestIsNotNanOrInf(t *testing.T) {
	for _, v := range []float64{0, -1e300, math.SmallestNonzeroFloat64} {
		require.True(t, IsNotNanOrInf(v), "IsNotNanOrInf(%v)", v)
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		require.False(t, IsNotNanOrInf(v), "IsNotNanOrInf(%v)", v)
	}
}

func TestAbs(t *testing.T) {
	require.Equal(t, 3.0, Abs(-3))
	require.Equal(t, 3.0, Abs(3))
	require.Equal(t, 0.0, Abs(0))
}
