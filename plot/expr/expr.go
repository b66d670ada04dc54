// Package expr validates and evaluates single-variable expressions in x.
//
// Input text is normalized first (lowercase, no whitespace, ^ rewritten to the
// two-character power token **). Validation runs a fixed set of independent
// character scans; evaluation is a recursive-descent parser that computes the
// value directly from the text on every call.
package expr

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PowerToken is the normalized spelling of exponentiation.
const PowerToken = "**"

var (
	// ErrEmptyExpression is returned for input with nothing to evaluate.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrInvalidExpression is the single signal for text rejected by Validate.
	ErrInvalidExpression = errors.New("invalid expression")

	ErrDivisionByZero  = errors.New("division by zero")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrMissingParen    = errors.New("expected closing parenthesis")
	ErrUnexpectedEnd   = errors.New("unexpected end of expression")
	ErrExpectedOperand = errors.New("expected number or variable")
	ErrUnexpectedChar  = errors.New("unexpected character")
)

// EvalError reports a failed evaluation together with the input value.
type EvalError struct {
	X   float64
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("eval at x=%v: %v", e.X, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Func maps x to f(x). It holds no state and may be called any number of times.
type Func func(x float64) (float64, error)

// Expression is normalized, validated expression text.
type Expression string

// Normalize lowercases the input, strips a leading "y=", removes whitespace,
// rewrites ^ to ** and maps the × and ÷ glyphs to * and /.
func Normalize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))

	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '^':
			b.WriteString(PowerToken)
		case r == '×':
			b.WriteByte('*')
		case r == '÷':
			b.WriteByte('/')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	return strings.TrimPrefix(out, "y=")
}

// Parse normalizes and validates input.
func Parse(input string) (Expression, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyExpression
	}
	s := Normalize(input)
	if s == "" {
		return "", ErrEmptyExpression
	}
	if !Validate(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExpression, input)
	}
	return Expression(s), nil
}

// Compile parses input and returns its curve function.
func Compile(input string) (Func, Expression, error) {
	e, err := Parse(input)
	if err != nil {
		return nil, "", err
	}
	return e.Func(), e, nil
}

// Eval evaluates the expression at x.
func (e Expression) Eval(x float64) (float64, error) {
	v, err := Eval(string(e), x)
	if err != nil {
		return 0, &EvalError{X: x, Err: err}
	}
	return v, nil
}

// Func returns the expression as a curve function.
func (e Expression) Func() Func {
	return e.Eval
}

func (e Expression) String() string { return string(e) }
