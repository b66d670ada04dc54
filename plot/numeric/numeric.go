// Package numeric holds the small set of rounding and parsing helpers shared by
// the evaluator, sampler and axis code.
//
// Rounding is derived from truncation with explicit sign handling so results do
// not depend on platform rounding modes.
package numeric

import (
	"math"
	"strconv"
)

// ParseFloat parses a decimal of the form [-]digits[.digits].
//
// The integer and fractional parts are parsed independently and recombined as
// int + sign*0.frac. Either part may be empty (".5", "5."), but not both.
// Exponents, a leading '+', embedded spaces and more than one decimal point
// are not accepted; malformed input yields NaN.
func ParseFloat(s string) float64 {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return math.NaN()
	}

	intPart, fracPart, hasDot := cut(s, '.')
	if !allDigits(intPart) || !allDigits(fracPart) {
		return math.NaN()
	}
	if intPart == "" && (!hasDot || fracPart == "") {
		return math.NaN()
	}

	n := 0.0
	if intPart != "" {
		v, err := strconv.ParseFloat(intPart, 64)
		if err != nil {
			return math.NaN()
		}
		n = v
	}
	if fracPart != "" {
		f, err := strconv.ParseFloat("0."+fracPart, 64)
		if err != nil {
			return math.NaN()
		}
		n += f
	}
	if neg {
		return -n
	}
	return n
}

func cut(s string, sep byte) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Trunc drops the fractional part: n - n%1.
func Trunc(n float64) float64 {
	return n - math.Mod(n, 1)
}

// Abs returns |x|.
func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Floor rounds toward negative infinity.
func Floor(n float64) float64 {
	i := Trunc(n)
	if n < 0 && i != n {
		return i - 1
	}
	return i
}

// Ceil rounds toward positive infinity.
func Ceil(n float64) float64 {
	i := Trunc(n)
	if n > 0 && i != n {
		return i + 1
	}
	return i
}

// Round rounds half away from zero.
func Round(n float64) float64 {
	i := Trunc(n)
	if Abs(n-i) >= 0.5 {
		if n > 0 {
			return i + 1
		}
		return i - 1
	}
	return i
}

// Round2 rounds to two decimal places. Values too large to scale by 100
// are already whole and come back unchanged.
func Round2(n float64) float64 {
	if !IsNotNanOrInf(n * 100) {
		return n
	}
	return Round(n*100) / 100
}

// IsNotNanOrInf reports whether x is a finite number.
//
// x != x holds only for NaN and x*0 is NaN for both infinities.
func IsNotNanOrInf(x float64) bool {
	return x == x && x*0 == 0
}
